// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import (
	"sync"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/hotda/membership"
	"github.com/luxfi/ids"
)

// Outcome reports what Append did with a vote.
type Outcome int

const (
	// Pending means the vote was accepted and folded in, but stake
	// has not yet crossed the success threshold.
	Pending Outcome = iota
	// Emitted means this call crossed the threshold and cert is the
	// resulting certificate. The accumulator is now destroyed.
	Emitted
)

// Accumulator is the per-(view, kind) vote collector from §4.2. It
// owns no lock beyond its own: callers hold it exclusively (it is
// normally reached through Collectors, which owns the map of these).
type Accumulator struct {
	mu      sync.Mutex
	view    uint64
	kind    crypto.Kind
	table   *membership.Table
	version uint64

	seen   map[ids.NodeID]struct{}
	stake  uint64
	sigs   []*crypto.Signature
	bitset []bool
	commit crypto.Commitment
	any    bool
	done   bool
}

// NewAccumulator creates an empty accumulator for (view, kind) bound
// to table and the upgrade-lock version in effect when it was
// created (new votes arriving under a new version belong to a fresh
// accumulator, since the signed commitment itself changed).
func NewAccumulator(view uint64, kind crypto.Kind, table *membership.Table, version uint64) *Accumulator {
	return &Accumulator{
		view:    view,
		kind:    kind,
		table:   table,
		version: version,
		seen:    make(map[ids.NodeID]struct{}),
		bitset:  make([]bool, table.Len()),
	}
}

// Append validates and folds v in, following §4.2 step by step:
//  1. reject a signer already seen with ErrDuplicateSigner, leaving
//     the tally unchanged;
//  2. validate the signature and the signer's table membership;
//  3. add stake, set the bit, fold the signature;
//  4. emit a certificate once stake crosses the success threshold,
//     destroying further state for this (view, kind);
//  5. otherwise report Pending.
func (a *Accumulator) Append(v Vote) (Outcome, *Certificate, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.done {
		// The certificate for this (view, kind) has already been
		// emitted; later votes are discarded with no error surfaced
		// (idempotence: re-emitting is a no-op).
		return Pending, nil, nil
	}

	if v.View != a.view || v.Kind != a.kind {
		return Pending, nil, errs.ErrStaleView
	}

	if _, dup := a.seen[v.Signer]; dup {
		return Pending, nil, errs.ErrDuplicateSigner
	}

	idx, stake, ok := a.table.Lookup(v.Signer)
	if !ok {
		return Pending, nil, errs.ErrUnknownSigner
	}

	vd := crypto.VoteData{Kind: a.kind, Commit: v.Commit}
	msg := vd.Commitment(a.version)
	if !crypto.Verify(a.table.Entry(idx).PubKey, msg, v.Sig) {
		return Pending, nil, errs.ErrInvalidSignature
	}

	if !a.any {
		a.commit = v.Commit
		a.any = true
	} else if a.commit != v.Commit {
		// Two honest signers must never disagree on the commitment
		// for the same (view, kind); a vote over a different value
		// from a new signer simply does not count toward this one.
		return Pending, nil, errs.ErrCommitMismatch
	}

	a.seen[v.Signer] = struct{}{}
	a.stake += stake
	a.bitset[idx] = true
	a.sigs = append(a.sigs, v.Sig)

	if a.stake < a.table.SuccessThreshold() {
		return Pending, nil, nil
	}

	agg, err := crypto.Aggregate(a.sigs)
	if err != nil {
		// Every folded signature was individually verified above, so
		// failing to aggregate them breaks an invariant rather than
		// reflecting bad input.
		return Pending, nil, errs.ErrInvariantBroken.WithCause(err)
	}

	cert := &Certificate{
		View:   a.view,
		Kind:   a.kind,
		Commit: a.commit,
		AggSig: agg,
		Bitset: append([]bool(nil), a.bitset...),
	}
	a.done = true
	a.sigs = nil // release references; this accumulator is spent
	return Emitted, cert, nil
}

// Stake reports the currently accumulated stake, for diagnostics.
func (a *Accumulator) Stake() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stake
}

// Done reports whether a certificate has already been emitted.
func (a *Accumulator) Done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}
