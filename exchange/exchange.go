// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package exchange bundles everything one sub-protocol (DA, Quorum,
// ViewSync) needs to sign, verify, and accumulate votes, keyed by a
// tag rather than the original's trait-object cross-referencing
// between exchange types (design notes §9, "Exchange").
package exchange

import (
	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/membership"
	"github.com/luxfi/hotda/network"
	"github.com/luxfi/hotda/vote"
	"github.com/luxfi/ids"
)

// Tag identifies a sub-protocol's exchange. Using crypto.Kind keeps
// one enum for "what is being voted on" across vote data, exchanges,
// and accumulators.
type Tag = crypto.Kind

// Exchange bundles the membership view, network channel, and this
// node's own identity and signing key for one sub-protocol, plus the
// vote collectors that accumulate certificates for it.
type Exchange struct {
	Tag        Tag
	Membership *membership.Membership
	Channel    network.Channel
	NodeID     ids.NodeID
	PrivateKey *crypto.PrivateKey
	Collectors *vote.Collectors
}

// New builds an Exchange for tag.
func New(tag Tag, mem *membership.Membership, ch network.Channel, nodeID ids.NodeID, sk *crypto.PrivateKey) *Exchange {
	return &Exchange{
		Tag:        tag,
		Membership: mem,
		Channel:    ch,
		NodeID:     nodeID,
		PrivateKey: sk,
		Collectors: vote.NewCollectors(),
	}
}

// Sign signs commit under this exchange's tag and the node's private
// key. A failure here comes from this node's own key material and is
// fatal to the caller (§7).
func (e *Exchange) Sign(commit crypto.Commitment, version uint64) (*crypto.Signature, error) {
	vd := crypto.VoteData{Kind: e.Tag, Commit: commit}
	return crypto.Sign(e.PrivateKey, vd.Commitment(version))
}

// CastVote builds this node's own vote over commit for view.
func (e *Exchange) CastVote(view uint64, commit crypto.Commitment, version uint64) (vote.Vote, error) {
	sig, err := e.Sign(commit, version)
	if err != nil {
		return vote.Vote{}, err
	}
	return vote.Vote{
		View:   view,
		Kind:   e.Tag,
		Commit: commit,
		Signer: e.NodeID,
		Sig:    sig,
	}, nil
}

// SignProposalHash signs the hash of a proposal's encoded
// transactions directly, with no vote-data wrapping (§3: the
// proposal invariant calls for "a valid signature by the leader ...
// over the hash of encoded_transactions", not a vote-data
// commitment — proposals are not votes and do not need cross-
// protocol domain separation from them).
func (e *Exchange) SignProposalHash(hash crypto.Commitment) (*crypto.Signature, error) {
	return crypto.Sign(e.PrivateKey, hash)
}

// Registry maps a sub-protocol Tag to its Exchange, replacing the
// original's compile-time trait-object wiring between the DA and
// Quorum exchange types with a runtime lookup.
type Registry struct {
	byTag map[Tag]*Exchange
}

// NewRegistry builds a Registry from a set of exchanges, one per tag.
func NewRegistry(exchanges ...*Exchange) *Registry {
	r := &Registry{byTag: make(map[Tag]*Exchange, len(exchanges))}
	for _, e := range exchanges {
		r.byTag[e.Tag] = e
	}
	return r
}

// Get returns the Exchange registered for tag, if any.
func (r *Registry) Get(tag Tag) (*Exchange, bool) {
	e, ok := r.byTag[tag]
	return e, ok
}
