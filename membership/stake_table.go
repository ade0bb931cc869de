// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package membership implements the stake table and committee
// election described in §4.1: an immutable-per-epoch mapping from
// committee member to voting weight, deterministic leader selection,
// and the success/failure threshold arithmetic every accumulator and
// certificate verifier relies on.
package membership

import (
	"bytes"
	"sort"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/ids"
)

// Entry is one committee member's position in an epoch's stake
// table. A member's index in the table is stable for the life of the
// table and is what certificate bitsets address.
type Entry struct {
	NodeID  ids.NodeID
	PubKey  *crypto.PublicKey
	Stake   uint64
	DAStake bool // member also sits on the DA committee
}

// Table is the immutable, ordered stake table for a single epoch.
// Construction sorts members into a canonical order so that every
// honest node computes the same leader and the same bitset layout
// for the same epoch (§4.1 contract).
type Table struct {
	epoch   uint64
	members []Entry
	index   map[ids.NodeID]int
	total   uint64
	daTotal uint64
}

// NewTable builds an immutable stake table for epoch from members.
// Members are sorted by NodeID so table layout never depends on
// insertion order.
func NewTable(epoch uint64, members []Entry) *Table {
	sorted := make([]Entry, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].NodeID[:], sorted[j].NodeID[:]) < 0
	})

	idx := make(map[ids.NodeID]int, len(sorted))
	var total, daTotal uint64
	for i, e := range sorted {
		idx[e.NodeID] = i
		total += e.Stake
		if e.DAStake {
			daTotal += e.Stake
		}
	}

	return &Table{
		epoch:   epoch,
		members: sorted,
		index:   idx,
		total:   total,
		daTotal: daTotal,
	}
}

// Epoch returns the epoch this table is fixed for.
func (t *Table) Epoch() uint64 { return t.epoch }

// Len returns the number of committee members (the quorum committee,
// not just the DA sub-committee).
func (t *Table) Len() int { return len(t.members) }

// Entry returns the member at stake-table index i.
func (t *Table) Entry(i int) Entry { return t.members[i] }

// Lookup returns a member's index and stake by NodeID.
func (t *Table) Lookup(node ids.NodeID) (index int, stake uint64, ok bool) {
	i, ok := t.index[node]
	if !ok {
		return 0, 0, false
	}
	return i, t.members[i].Stake, true
}

// HasStake reports whether node carries any weight in the quorum
// committee for this epoch.
func (t *Table) HasStake(node ids.NodeID) bool {
	_, _, ok := t.Lookup(node)
	return ok
}

// HasDAStake reports whether node sits on the DA sub-committee.
func (t *Table) HasDAStake(node ids.NodeID) bool {
	i, ok := t.index[node]
	return ok && t.members[i].DAStake
}

// TotalStake returns the quorum committee's total stake.
func (t *Table) TotalStake() uint64 { return t.total }

// SuccessThreshold is the smallest stake that implies a Byzantine
// quorum: floor(2*total/3) + 1 (§4.1).
func (t *Table) SuccessThreshold() uint64 {
	return (2*t.total)/3 + 1
}

// FailureThreshold is the smallest stake that proves success
// impossible: floor(total/3) + 1 (§4.1).
func (t *Table) FailureThreshold() uint64 {
	return t.total/3 + 1
}

// Leader deterministically selects the leader for view within this
// epoch's table. Every honest node with the same table returns the
// same key for the same view (§4.1 contract).
func (t *Table) Leader(view uint64) (ids.NodeID, bool) {
	if len(t.members) == 0 {
		return ids.NodeID{}, false
	}
	return t.members[view%uint64(len(t.members))].NodeID, true
}
