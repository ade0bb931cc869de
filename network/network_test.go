// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network_test

import (
	"context"
	"testing"

	"github.com/luxfi/hotda/network/networkmock"
	"github.com/luxfi/hotda/wire"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestMockChannelRecordsSends(t *testing.T) {
	ch := networkmock.NewMockChannel()
	require.False(t, ch.IsPrimaryDown())

	env := wire.Envelope{Kind: wire.KindProposal, Payload: []byte("p")}
	require.NoError(t, ch.BroadcastDAProposal(context.Background(), env))

	var to ids.NodeID
	to[0] = 1
	require.NoError(t, ch.SendDAVote(context.Background(), to, env))

	ch.SetPrimaryDown(true)
	require.True(t, ch.IsPrimaryDown())

	sent := ch.Sent()
	require.Len(t, sent, 2)
	require.Equal(t, "proposal", sent[0].Kind)
	require.Equal(t, "vote", sent[1].Kind)
	require.Equal(t, to, sent[1].To)
}
