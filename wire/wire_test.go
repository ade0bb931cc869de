// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"testing"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/vote"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestVoteRoundTrip(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)
	commit := crypto.Hash([]byte("payload"))
	vd := crypto.VoteData{Kind: crypto.KindDA, Commit: commit}
	sig, err := crypto.Sign(sk, vd.Commitment(0))
	require.NoError(t, err)

	var signer ids.NodeID
	signer[0] = 7

	v := vote.Vote{View: 3, Kind: crypto.KindDA, Commit: commit, Signer: signer, Sig: sig}
	encoded := EncodeVote(v)
	decoded, err := DecodeVote(encoded)
	require.NoError(t, err)
	require.Equal(t, v.View, decoded.View)
	require.Equal(t, v.Kind, decoded.Kind)
	require.Equal(t, v.Commit, decoded.Commit)
	require.Equal(t, v.Signer, decoded.Signer)
}

func TestCertificateRoundTrip(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)
	commit := crypto.Hash([]byte("cert-payload"))
	vd := crypto.VoteData{Kind: crypto.KindDA, Commit: commit}
	sig, err := crypto.Sign(sk, vd.Commitment(0))
	require.NoError(t, err)

	cert := &vote.Certificate{
		View:   5,
		Kind:   crypto.KindDA,
		Commit: commit,
		AggSig: sig,
		Bitset: []bool{true, false, true, true},
	}
	encoded := EncodeCertificate(cert)
	decoded, err := DecodeCertificate(encoded)
	require.NoError(t, err)
	require.Equal(t, cert.View, decoded.View)
	require.Equal(t, cert.Bitset, decoded.Bitset)
	require.Equal(t, cert.Commit, decoded.Commit)
}

func TestProposalRoundTrip(t *testing.T) {
	p := Proposal{View: 9, Commit: crypto.Hash([]byte("x")), Payload: []byte("transaction bytes")}
	decoded, err := DecodeProposal(EncodeProposal(p))
	require.NoError(t, err)
	require.Equal(t, p, decoded)
}

func TestEnvelopeRoundTripAndVerify(t *testing.T) {
	sk, err := crypto.GenerateKey()
	require.NoError(t, err)
	var sender ids.NodeID
	sender[0] = 42

	env, err := NewEnvelope(KindProposal, sender, sk, []byte("proposal-bytes"))
	require.NoError(t, err)
	require.True(t, env.Verify())

	encoded := EncodeEnvelope(env)
	decoded, err := DecodeEnvelope(encoded)
	require.NoError(t, err)
	require.Equal(t, env.Kind, decoded.Kind)
	require.Equal(t, env.Sender, decoded.Sender)
	require.Equal(t, env.Payload, decoded.Payload)
	require.True(t, decoded.Verify())
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	p := Proposal{View: 1, Commit: crypto.Hash([]byte("y")), Payload: []byte("abc")}
	encoded := EncodeProposal(p)
	_, err := DecodeProposal(encoded[:len(encoded)-2])
	require.Error(t, err)
}
