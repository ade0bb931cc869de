// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package network implements the DA sub-protocol's network-channel
// boundary (§6): broadcasting proposals, sending/receiving votes and
// certificates, and reporting primary-network health for the
// optimistic VID path. Grounded on networking/sender.Sender's
// per-recipient send-method shape, generalized to context-aware,
// envelope-carrying calls.
package network

import (
	"context"

	"github.com/luxfi/hotda/wire"
	"github.com/luxfi/ids"
)

// Channel is the network boundary the DA task sends and receives
// through. Every send carries a signed Envelope (SUPPLEMENTED
// FEATURES item 5); Channel implementations are responsible only for
// transport, not for verifying the envelope's signature.
type Channel interface {
	// BroadcastDAProposal sends env to the entire DA committee.
	BroadcastDAProposal(ctx context.Context, env wire.Envelope) error

	// SendDAVote sends env to a single recipient, typically the leader
	// of the vote's own view.
	SendDAVote(ctx context.Context, to ids.NodeID, env wire.Envelope) error

	// BroadcastDACertificate sends env to the entire DA committee.
	BroadcastDACertificate(ctx context.Context, env wire.Envelope) error

	// IsPrimaryDown reports whether the primary quorum network appears
	// unreachable, the signal the detached optimistic-VID task watches
	// (SUPPLEMENTED FEATURES item 4).
	IsPrimaryDown() bool
}
