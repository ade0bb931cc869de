// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	b := New()
	s1 := b.Subscribe(4)
	s2 := b.Subscribe(4)

	b.Publish(ViewChange{View: 1})

	require.Equal(t, ViewChange{View: 1}, <-s1.Events())
	require.Equal(t, ViewChange{View: 1}, <-s2.Events())
}

func TestPublishPreservesOrderPerPublisher(t *testing.T) {
	b := New()
	s := b.Subscribe(8)

	for v := uint64(1); v <= 5; v++ {
		b.Publish(ViewChange{View: v})
	}

	for v := uint64(1); v <= 5; v++ {
		ev := (<-s.Events()).(ViewChange)
		require.Equal(t, v, ev.View)
	}
}

func TestPublishDropsForFullSubscriberWithoutBlockingOthers(t *testing.T) {
	b := New()
	slow := b.Subscribe(1)
	fast := b.Subscribe(4)

	b.Publish(ViewChange{View: 1})
	b.Publish(ViewChange{View: 2}) // slow's buffer (cap 1) is already full

	require.Equal(t, 1, b.Dropped(slow))

	// fast received both.
	require.Equal(t, ViewChange{View: 1}, <-fast.Events())
	require.Equal(t, ViewChange{View: 2}, <-fast.Events())
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	s := b.Subscribe(1)
	b.Unsubscribe(s)

	_, ok := <-s.Events()
	require.False(t, ok)

	// Publishing after unsubscribe must not panic.
	b.Publish(Shutdown{})
}
