// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package certificate implements the independent certificate check
// described in §4.4: recompute the signed message from the claimed
// commitment, sum the bitset's stake against the stake table, and
// verify the aggregate signature under the selected keys.
package certificate

import (
	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/hotda/membership"
	"github.com/luxfi/hotda/vote"
)

// GenesisView is the view number special-cased by §4.4 step 1: a
// certificate claiming genesis is accepted without further checks.
const GenesisView uint64 = 0

// Verify checks cert against table (the stake table for the epoch
// cert.View belongs to) under the given upgrade-lock version. If
// want is non-nil, the certified commitment must also match the
// caller's expectation (§4.4 step 5); pass nil to skip that check.
//
// isGenesis lets the caller mark a certificate as a genesis
// certificate (§4.4 step 1); genesis certificates carry no real
// signatures and are accepted unconditionally.
func Verify(cert *vote.Certificate, table *membership.Table, version uint64, want *crypto.Commitment, isGenesis bool) error {
	if isGenesis && cert.View == GenesisView {
		return nil
	}

	if len(cert.Bitset) != table.Len() {
		return errs.ErrBitsetSize
	}

	var stake uint64
	pubKeys := make([]*crypto.PublicKey, 0, len(cert.Bitset))
	for i, set := range cert.Bitset {
		if !set {
			continue
		}
		entry := table.Entry(i)
		stake += entry.Stake
		pubKeys = append(pubKeys, entry.PubKey)
	}

	if stake < table.SuccessThreshold() {
		return errs.ErrThresholdNotMet
	}

	vd := crypto.VoteData{Kind: cert.Kind, Commit: cert.Commit}
	msg := vd.Commitment(version)
	if !crypto.VerifyAggregate(pubKeys, msg, cert.AggSig) {
		return errs.ErrBadAggregate
	}

	if want != nil && *want != cert.Commit {
		return errs.ErrCommitMismatch
	}

	return nil
}
