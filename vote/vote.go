// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vote implements the weighted-stake signature accumulator
// described in §4.2: per-(view, kind) state that folds a stream of
// single-signer votes into a threshold certificate.
package vote

import (
	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/ids"
)

// Vote is one signer's ballot for a given view and kind.
type Vote struct {
	View   uint64
	Kind   crypto.Kind
	Commit crypto.Commitment
	Signer ids.NodeID
	Sig    *crypto.Signature
}

// Certificate is the threshold aggregate produced once accumulated
// stake crosses the success threshold (§3 "Certificate").
//
// Bitset is indexed by stake-table position and spans the *entire*
// table rather than only the participating signers, so two
// certificates over the same signer set always encode identically —
// this is what resolves the "are bitsets canonicalised" open question
// from spec §9 without needing a separate sort step.
type Certificate struct {
	View   uint64
	Kind   crypto.Kind
	Commit crypto.Commitment
	AggSig *crypto.Signature
	Bitset []bool
}

// SelectedStake sums lookup(i) over every index i whose bit is set in
// c.Bitset. The accumulator and the certificate verifier keep their
// own running sums and do not call it.
func (c *Certificate) SelectedStake(lookup func(i int) uint64) uint64 {
	var total uint64
	for i, set := range c.Bitset {
		if set {
			total += lookup(i)
		}
	}
	return total
}
