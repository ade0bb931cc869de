// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import (
	"testing"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/hotda/membership"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

type signer struct {
	node ids.NodeID
	sk   *crypto.PrivateKey
}

func makeSigners(t *testing.T, stakes []uint64) ([]signer, *membership.Table) {
	t.Helper()
	signers := make([]signer, len(stakes))
	entries := make([]membership.Entry, len(stakes))
	for i, s := range stakes {
		sk, err := crypto.GenerateKey()
		require.NoError(t, err)
		var n ids.NodeID
		n[0] = byte(i + 1)
		signers[i] = signer{node: n, sk: sk}
		entries[i] = membership.Entry{NodeID: n, PubKey: sk.PublicKey(), Stake: s, DAStake: true}
	}
	return signers, membership.NewTable(1, entries)
}

func castVote(t *testing.T, s signer, view uint64, commit crypto.Commitment, version uint64) Vote {
	t.Helper()
	vd := crypto.VoteData{Kind: crypto.KindDA, Commit: commit}
	sig, err := crypto.Sign(s.sk, vd.Commitment(version))
	require.NoError(t, err)
	return Vote{View: view, Kind: crypto.KindDA, Commit: commit, Signer: s.node, Sig: sig}
}

// TestHappyPathScenario1 mirrors §8 scenario 1: n=4, uniform stake 1,
// T_s=3. The 3rd distinct vote produces a certificate with 3 bits set.
func TestHappyPathScenario1(t *testing.T) {
	signers, table := makeSigners(t, []uint64{1, 1, 1, 1})
	commit := crypto.Hash([]byte{0xAA, 0xBB})
	acc := NewAccumulator(1, crypto.KindDA, table, 0)

	for i := 0; i < 2; i++ {
		outcome, cert, err := acc.Append(castVote(t, signers[i], 1, commit, 0))
		require.NoError(t, err)
		require.Equal(t, Pending, outcome)
		require.Nil(t, cert)
	}

	outcome, cert, err := acc.Append(castVote(t, signers[2], 1, commit, 0))
	require.NoError(t, err)
	require.Equal(t, Emitted, outcome)
	require.NotNil(t, cert)

	set := 0
	for _, b := range cert.Bitset {
		if b {
			set++
		}
	}
	require.Equal(t, 3, set)
	require.True(t, acc.Done())
}

// TestDuplicateVoteScenario4 mirrors §8 scenario 4: the same vote sent
// twice advances stake once (0 -> 1) and then stays at 1.
func TestDuplicateVoteScenario4(t *testing.T) {
	signers, table := makeSigners(t, []uint64{1, 1, 1, 1})
	commit := crypto.Hash([]byte{0xAA, 0xBB})
	acc := NewAccumulator(1, crypto.KindDA, table, 0)

	v := castVote(t, signers[0], 1, commit, 0)
	_, _, err := acc.Append(v)
	require.NoError(t, err)
	require.Equal(t, uint64(1), acc.Stake())

	_, _, err = acc.Append(v)
	require.ErrorIs(t, err, errs.ErrDuplicateSigner)
	require.Equal(t, uint64(1), acc.Stake())
}

// TestThresholdEdgeScenario5 mirrors §8 scenario 5: stakes [2,2,2,1],
// T_s=5. Members 0,1 give stake 4 (Pending); adding member 3 gives
// stake 5 and bitset 1101 (indices 0,1,3 set — table is sorted by
// NodeID, so index order follows signer insertion order here).
func TestThresholdEdgeScenario5(t *testing.T) {
	signers, table := makeSigners(t, []uint64{2, 2, 2, 1})
	commit := crypto.Hash([]byte{0xCC})
	acc := NewAccumulator(1, crypto.KindDA, table, 0)

	outcome, _, err := acc.Append(castVote(t, signers[0], 1, commit, 0))
	require.NoError(t, err)
	require.Equal(t, Pending, outcome)

	outcome, _, err = acc.Append(castVote(t, signers[1], 1, commit, 0))
	require.NoError(t, err)
	require.Equal(t, Pending, outcome)
	require.Equal(t, uint64(4), acc.Stake())

	outcome, cert, err := acc.Append(castVote(t, signers[3], 1, commit, 0))
	require.NoError(t, err)
	require.Equal(t, Emitted, outcome)
	require.Equal(t, []bool{true, true, false, true}, cert.Bitset)
}

func TestUnknownSignerRejected(t *testing.T) {
	_, table := makeSigners(t, []uint64{1, 1, 1})
	outsider, _ := makeSigners(t, []uint64{1})
	outsider[0].node[0] = 0x99 // not in the table
	commit := crypto.Hash([]byte{0x01})
	acc := NewAccumulator(1, crypto.KindDA, table, 0)

	_, _, err := acc.Append(castVote(t, outsider[0], 1, commit, 0))
	require.ErrorIs(t, err, errs.ErrUnknownSigner)
}

func TestCertificateEmissionIsOneShot(t *testing.T) {
	signers, table := makeSigners(t, []uint64{1, 1, 1})
	commit := crypto.Hash([]byte{0x02})
	acc := NewAccumulator(1, crypto.KindDA, table, 0)

	for i := 0; i < 3; i++ {
		_, _, err := acc.Append(castVote(t, signers[i], 1, commit, 0))
		require.NoError(t, err)
	}
	require.True(t, acc.Done())

	// A vote arriving after emission (e.g. a retransmit) is discarded
	// silently, not treated as an error.
	outsider, _ := makeSigners(t, []uint64{1})
	outcome, cert, err := acc.Append(castVote(t, outsider[0], 1, commit, 0))
	require.NoError(t, err)
	require.Equal(t, Pending, outcome)
	require.Nil(t, cert)
}
