// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package task defines the harness contract every event-driven task
// (most importantly the DA task) implements: register on an
// eventbus.Bus, consume events until told to stop, clean up on
// shutdown. Grounded on engine/dag.Engine's Start/Shutdown(context)
// shape and on the original TaskState trait's handle-and-cancel
// lifecycle.
package task

import (
	"context"

	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/hotda/eventbus"
)

// Task is one event-consuming unit of work the harness runs.
type Task interface {
	// Name identifies the task for logging and metrics.
	Name() string

	// Handle processes a single event. A returned error is passed to
	// the harness's onError callback and classified via errs.KindOf:
	// after a Validation or Transient error the harness continues (it
	// does not retry the event), a Fatal error stops the harness
	// entirely.
	Handle(ctx context.Context, ev eventbus.Event) error

	// Shutdown releases any resources the task holds (detached
	// goroutines, open files). Called once, after the harness stops
	// delivering events.
	Shutdown(ctx context.Context) error
}

// Harness runs a fixed set of tasks against a shared bus, dispatching
// every event to every task's Handle and stopping all of them on a
// Fatal error or on an explicit Shutdown event.
type Harness struct {
	bus   *eventbus.Bus
	tasks []Task
	sub   *eventbus.Subscriber

	onError func(task string, err error)
}

// NewHarness registers tasks against bus with a single shared
// subscription; every event published to bus is handed to every task
// in registration order.
func NewHarness(bus *eventbus.Bus, tasks []Task, onError func(task string, err error)) *Harness {
	return &Harness{
		bus:     bus,
		tasks:   tasks,
		sub:     bus.Subscribe(eventbus.DefaultCapacity),
		onError: onError,
	}
}

// Run dispatches events until ctx is cancelled, a Shutdown event is
// observed, or a task returns a Fatal-kind error. It does not return
// until every task's Shutdown has been called.
func (h *Harness) Run(ctx context.Context) {
	defer h.shutdownAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-h.sub.Events():
			if !ok {
				return
			}
			if _, isShutdown := ev.(eventbus.Shutdown); isShutdown {
				return
			}
			for _, t := range h.tasks {
				err := t.Handle(ctx, ev)
				if err == nil {
					continue
				}
				if h.onError != nil {
					h.onError(t.Name(), err)
				}
				if errs.KindOf(err) == errs.Fatal {
					return
				}
			}
		}
	}
}

func (h *Harness) shutdownAll(ctx context.Context) {
	h.bus.Unsubscribe(h.sub)
	for _, t := range h.tasks {
		if err := t.Shutdown(ctx); err != nil && h.onError != nil {
			h.onError(t.Name(), err)
		}
	}
}
