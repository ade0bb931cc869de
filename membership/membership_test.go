// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package membership

import (
	"testing"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func nodeID(b byte) ids.NodeID {
	var n ids.NodeID
	n[0] = b
	return n
}

func uniformTable(t *testing.T, n int, stake uint64) *Table {
	t.Helper()
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		sk, err := crypto.GenerateKey()
		require.NoError(t, err)
		entries[i] = Entry{NodeID: nodeID(byte(i + 1)), PubKey: sk.PublicKey(), Stake: stake, DAStake: true}
	}
	return NewTable(1, entries)
}

func TestSuccessThresholdScenario1(t *testing.T) {
	// n=4, uniform stake 1 -> T_s = floor(8/3)+1 = 3, matching §8 scenario 1.
	table := uniformTable(t, 4, 1)
	require.Equal(t, uint64(3), table.SuccessThreshold())
}

func TestThresholdEdgeScenario5(t *testing.T) {
	stakes := []uint64{2, 2, 2, 1}
	entries := make([]Entry, len(stakes))
	for i, s := range stakes {
		sk, err := crypto.GenerateKey()
		require.NoError(t, err)
		entries[i] = Entry{NodeID: nodeID(byte(i + 1)), PubKey: sk.PublicKey(), Stake: s, DAStake: true}
	}
	table := NewTable(1, entries)
	require.Equal(t, uint64(5), table.SuccessThreshold())
}

func TestLeaderDeterministic(t *testing.T) {
	table := uniformTable(t, 4, 1)
	l1, ok := table.Leader(1)
	require.True(t, ok)
	l2, ok := table.Leader(1)
	require.True(t, ok)
	require.Equal(t, l1, l2)
}

func TestMembershipUnknownEpoch(t *testing.T) {
	m := New(NewStaticProvider(nil))
	_, err := m.Leader(0, 99)
	require.ErrorIs(t, err, errs.ErrUnknownEpoch)
}
