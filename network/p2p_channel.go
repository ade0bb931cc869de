// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"sync/atomic"

	"github.com/luxfi/hotda/wire"
	"github.com/luxfi/ids"
	"github.com/luxfi/p2p"
)

// P2PChannel is the production Channel, built on a github.com/luxfi/p2p
// sender the way engine/chain/block/vm.go hands a p2p.Sender to the
// VM: gossip for committee-wide sends, a direct app request for the
// single-recipient vote send.
type P2PChannel struct {
	sender p2p.Sender

	// requestID distinguishes in-flight app requests; the DA protocol
	// itself never correlates responses, so a simple counter suffices.
	requestID atomic.Uint32

	// primaryDown is flipped by the node's connectivity monitor; read
	// without a lock since it is only ever a single bool flag (the
	// writer side lives outside this package).
	primaryDown atomic.Bool
}

// NewP2PChannel wraps sender as a Channel.
func NewP2PChannel(sender p2p.Sender) *P2PChannel {
	return &P2PChannel{sender: sender}
}

// BroadcastDAProposal implements Channel.
func (c *P2PChannel) BroadcastDAProposal(ctx context.Context, env wire.Envelope) error {
	return c.sender.SendAppGossip(ctx, wire.EncodeEnvelope(env))
}

// SendDAVote implements Channel.
func (c *P2PChannel) SendDAVote(ctx context.Context, to ids.NodeID, env wire.Envelope) error {
	return c.sender.SendAppRequest(ctx, to, c.requestID.Add(1), wire.EncodeEnvelope(env))
}

// BroadcastDACertificate implements Channel.
func (c *P2PChannel) BroadcastDACertificate(ctx context.Context, env wire.Envelope) error {
	return c.sender.SendAppGossip(ctx, wire.EncodeEnvelope(env))
}

// IsPrimaryDown implements Channel.
func (c *P2PChannel) IsPrimaryDown() bool {
	return c.primaryDown.Load()
}

// SetPrimaryDown lets the node's connectivity monitor flip the signal
// the optimistic-VID task watches.
func (c *P2PChannel) SetPrimaryDown(down bool) {
	c.primaryDown.Store(down)
}

var _ Channel = (*P2PChannel)(nil)
