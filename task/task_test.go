// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/luxfi/hotda/eventbus"
	"github.com/stretchr/testify/require"
)

type recordingTask struct {
	mu       sync.Mutex
	name     string
	handled  []eventbus.Event
	shutdown bool
	failOn   func(eventbus.Event) error
}

func (r *recordingTask) Name() string { return r.name }

func (r *recordingTask) Handle(_ context.Context, ev eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = append(r.handled, ev)
	if r.failOn != nil {
		return r.failOn(ev)
	}
	return nil
}

func (r *recordingTask) Shutdown(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdown = true
	return nil
}

func (r *recordingTask) events() []eventbus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]eventbus.Event, len(r.handled))
	copy(out, r.handled)
	return out
}

func TestHarnessDispatchesToAllTasks(t *testing.T) {
	bus := eventbus.New()
	a := &recordingTask{name: "a"}
	b := &recordingTask{name: "b"}
	h := NewHarness(bus, []Task{a, b}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	bus.Publish(eventbus.ViewChange{View: 1})
	require.Eventually(t, func() bool {
		return len(a.events()) == 1 && len(b.events()) == 1
	}, time.Second, time.Millisecond)

	cancel()
	<-done
	require.True(t, a.shutdown)
	require.True(t, b.shutdown)
}

func TestHarnessStopsOnShutdownEvent(t *testing.T) {
	bus := eventbus.New()
	a := &recordingTask{name: "a"}
	h := NewHarness(bus, []Task{a}, nil)

	done := make(chan struct{})
	go func() {
		h.Run(context.Background())
		close(done)
	}()

	bus.Publish(eventbus.Shutdown{})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("harness did not stop on Shutdown event")
	}
	require.True(t, a.shutdown)
}

func TestHarnessReportsTaskErrors(t *testing.T) {
	bus := eventbus.New()
	var mu sync.Mutex
	var reportedTask string
	var reportedErr error

	a := &recordingTask{name: "a", failOn: func(eventbus.Event) error { return assertErr }}
	h := NewHarness(bus, []Task{a}, func(task string, err error) {
		mu.Lock()
		defer mu.Unlock()
		reportedTask = task
		reportedErr = err
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	bus.Publish(eventbus.ViewChange{View: 1})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reportedErr != nil
	}, time.Second, time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "a", reportedTask)
	require.ErrorIs(t, reportedErr, assertErr)
}

var assertErr = errTest("boom")

type errTest string

func (e errTest) Error() string { return string(e) }
