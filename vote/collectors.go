// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/membership"
)

type collectorKey struct {
	view uint64
	kind crypto.Kind
}

// Collectors owns the map of per-(view, kind) accumulators for one
// task (§3 "Per-view scratch state... represent as a map keyed by
// view, owned solely by the task; never cross a lock boundary with
// it"). It is not itself meant to be shared across tasks.
type Collectors struct {
	mu  sync.Mutex
	byK map[collectorKey]*Accumulator
}

// NewCollectors returns an empty collector map.
func NewCollectors() *Collectors {
	return &Collectors{byK: make(map[collectorKey]*Accumulator)}
}

// GetOrCreate returns the accumulator for (view, kind), creating one
// against table/version on first use.
func (c *Collectors) GetOrCreate(view uint64, kind crypto.Kind, table *membership.Table, version uint64) *Accumulator {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := collectorKey{view, kind}
	acc, ok := c.byK[k]
	if !ok {
		acc = NewAccumulator(view, kind, table, version)
		c.byK[k] = acc
	}
	return acc
}

// Drop removes the accumulator for (view, kind), e.g. right after it
// emits a certificate (§3 "destroyed... on certificate emission").
func (c *Collectors) Drop(view uint64, kind crypto.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byK, collectorKey{view, kind})
}

// GC drops every accumulator for a view strictly below floor, the
// garbage-collection horizon computed by the caller as
// cur_view - GC_window (P6).
func (c *Collectors) GC(floor uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.byK {
		if k.view < floor {
			delete(c.byK, k)
		}
	}
}

// Len reports how many live accumulators remain, for diagnostics.
func (c *Collectors) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byK)
}

// Views reports the distinct views with at least one live accumulator,
// in the style of set.Set.List's maps.Keys-backed enumeration.
func (c *Collectors) Views() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[uint64]struct{}, len(c.byK))
	for k := range c.byK {
		seen[k.view] = struct{}{}
	}
	return slices.Collect(maps.Keys(seen))
}
