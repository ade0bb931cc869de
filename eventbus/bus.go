// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package eventbus implements the in-process broadcast bus (§4.6)
// every task in this module communicates over, grounded on the
// broadcast_event call sites throughout da.rs and on the buffered-
// channel-plus-mutex texture of consensus/beam/engine.go and
// engine/bft/comm.go.
package eventbus

import (
	"sync"

	"github.com/luxfi/hotda/errs"
)

// DefaultCapacity is the per-subscriber buffer depth used when a
// caller does not specify one.
const DefaultCapacity = 256

// Bus is a multi-producer, multi-consumer broadcast channel: every
// Publish call is delivered to every current Subscriber, in the order
// Publish was called (FIFO per publisher, since Publish itself holds
// the dispatch lock for its whole fan-out). A slow subscriber that
// falls behind has events dropped for it rather than blocking the
// publisher or the other subscribers; Dropped reports how many.
type Bus struct {
	mu   sync.Mutex
	subs map[int]*subscription
	next int
}

type subscription struct {
	ch      chan Event
	dropped int
}

// Subscriber is a handle returned by Subscribe. Events must be
// consumed from Events() to keep the subscriber from lagging.
type Subscriber struct {
	bus *Bus
	id  int
	ch  chan Event
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[int]*subscription)}
}

// Subscribe registers a new subscriber with the given buffer
// capacity. Call Unsubscribe when the caller's task shuts down.
func (b *Bus) Subscribe(capacity int) *Subscriber {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	sub := &subscription{ch: make(chan Event, capacity)}
	b.subs[id] = sub
	return &Subscriber{bus: b, id: id, ch: sub.ch}
}

// Unsubscribe removes s from the bus and closes its channel. Later
// Publish calls skip s; PublishBlocking does not check whether s is
// still subscribed.
func (b *Bus) Unsubscribe(s *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[s.id]; ok {
		delete(b.subs, s.id)
		close(sub.ch)
	}
}

// Events returns the channel a subscriber should range over.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Dropped reports how many events have been dropped for s because its
// buffer was full when Publish tried to deliver to it.
func (b *Bus) Dropped(s *Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[s.id]; ok {
		return sub.dropped
	}
	return 0
}

// Publish delivers ev to every current subscriber. A subscriber whose
// buffer is full does not block the others: its event is dropped and
// its lag counter incremented, matching the bus's "drop slow
// consumers rather than stall the protocol" policy (§4.6). Publish
// itself never returns an error for a full subscriber buffer — only
// ErrBusFull-classified errors are reserved for bounded, synchronous
// send paths elsewhere (e.g. a direct task-to-task handoff), not this
// fan-out.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		select {
		case sub.ch <- ev:
		default:
			sub.dropped++
		}
	}
}

// PublishBlocking delivers ev to a single subscriber, blocking until
// there is room. Used by direct handoffs (not broadcast) where
// dropping would violate a protocol invariant; returns ErrBusFull if
// ctxDone closes before there is room.
func (b *Bus) PublishBlocking(s *Subscriber, ev Event, ctxDone <-chan struct{}) error {
	select {
	case s.ch <- ev:
		return nil
	case <-ctxDone:
		return errs.ErrBusFull
	}
}
