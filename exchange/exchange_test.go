// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"testing"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/membership"
	"github.com/luxfi/hotda/network/networkmock"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestExchangeCastVoteVerifies(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)
	var node ids.NodeID
	node[0] = 3

	table := membership.NewTable(1, []membership.Entry{
		{NodeID: node, PubKey: sk.PublicKey(), Stake: 1, DAStake: true},
	})
	mem := membership.New(membership.NewStaticProvider(map[uint64]*membership.Table{1: table}))

	ex := New(crypto.KindDA, mem, networkmock.NewMockChannel(), node, sk)
	commit := crypto.Hash([]byte("payload"))
	v, err := ex.CastVote(1, commit, 0)
	require.NoError(t, err)

	vd := crypto.VoteData{Kind: crypto.KindDA, Commit: commit}
	require.True(t, crypto.Verify(sk.PublicKey(), vd.Commitment(0), v.Sig))
}

func TestRegistryLookup(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)
	var node ids.NodeID
	table := membership.NewTable(1, nil)
	mem := membership.New(membership.NewStaticProvider(map[uint64]*membership.Table{1: table}))

	da := New(crypto.KindDA, mem, networkmock.NewMockChannel(), node, sk)
	quorum := New(crypto.KindYes, mem, networkmock.NewMockChannel(), node, sk)
	r := NewRegistry(da, quorum)

	got, ok := r.Get(crypto.KindDA)
	require.True(t, ok)
	require.Same(t, da, got)

	_, ok = r.Get(crypto.KindTimeout)
	require.False(t, ok)
}
