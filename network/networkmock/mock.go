// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package networkmock provides a hand-written mock Channel for tests,
// in the style of networking/sender/sendermock.MockSender: it records
// every call rather than asserting expectations inline, letting tests
// inspect what was sent after the fact.
package networkmock

import (
	"context"
	"sync"

	"github.com/luxfi/hotda/wire"
	"github.com/luxfi/ids"
)

// Sent is one recorded outbound call.
type Sent struct {
	Kind string // "proposal", "vote", "certificate"
	To   ids.NodeID
	Env  wire.Envelope
}

// MockChannel is a network.Channel that records every send instead of
// transmitting it anywhere.
type MockChannel struct {
	mu   sync.Mutex
	sent []Sent

	primaryDown bool
}

// NewMockChannel returns an empty MockChannel.
func NewMockChannel() *MockChannel {
	return &MockChannel{}
}

// BroadcastDAProposal implements network.Channel.
func (m *MockChannel) BroadcastDAProposal(_ context.Context, env wire.Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Sent{Kind: "proposal", Env: env})
	return nil
}

// SendDAVote implements network.Channel.
func (m *MockChannel) SendDAVote(_ context.Context, to ids.NodeID, env wire.Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Sent{Kind: "vote", To: to, Env: env})
	return nil
}

// BroadcastDACertificate implements network.Channel.
func (m *MockChannel) BroadcastDACertificate(_ context.Context, env wire.Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Sent{Kind: "certificate", Env: env})
	return nil
}

// IsPrimaryDown implements network.Channel.
func (m *MockChannel) IsPrimaryDown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.primaryDown
}

// SetPrimaryDown lets a test simulate the primary network going down.
func (m *MockChannel) SetPrimaryDown(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.primaryDown = down
}

// Sent returns every call recorded so far.
func (m *MockChannel) Sent() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sent, len(m.sent))
	copy(out, m.sent)
	return out
}

// Clear discards all recorded calls.
func (m *MockChannel) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}
