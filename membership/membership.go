// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package membership

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/ids"
)

// Provider resolves the immutable stake table for an epoch. Epoch
// boundaries and how tables are produced (staking transactions,
// genesis config, ...) are out of this module's scope; Provider is
// the seam a host implementation plugs into.
type Provider interface {
	TableForEpoch(epoch uint64) (*Table, bool)
}

// StaticProvider serves a fixed set of pre-built tables, e.g. loaded
// once from genesis configuration. Safe for concurrent reads: the
// map is never mutated after construction.
type StaticProvider struct {
	tables map[uint64]*Table
}

// NewStaticProvider returns a Provider over tables, keyed by epoch.
func NewStaticProvider(tables map[uint64]*Table) *StaticProvider {
	copied := make(map[uint64]*Table, len(tables))
	for e, t := range tables {
		copied[e] = t
	}
	return &StaticProvider{tables: copied}
}

func (p *StaticProvider) TableForEpoch(epoch uint64) (*Table, bool) {
	t, ok := p.tables[epoch]
	return t, ok
}

// GrowableProvider additionally allows new epoch tables to be
// installed as the chain advances (epochs only ever accumulate,
// never mutate once installed). Distinct from StaticProvider so
// tests and genesis-only hosts can use the simpler, fully immutable
// variant.
type GrowableProvider struct {
	mu     sync.RWMutex
	tables map[uint64]*Table
}

func NewGrowableProvider() *GrowableProvider {
	return &GrowableProvider{tables: make(map[uint64]*Table)}
}

func (p *GrowableProvider) TableForEpoch(epoch uint64) (*Table, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.tables[epoch]
	return t, ok
}

// Install fixes the table for epoch. A no-op if a table for that
// epoch already exists: tables are immutable once installed.
func (p *GrowableProvider) Install(t *Table) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.tables[t.Epoch()]; exists {
		return
	}
	p.tables[t.Epoch()] = t
}

// Epochs returns every epoch this provider currently holds a table
// for, in the style of set.Set.List's maps.Keys-backed snapshot: a
// fresh slice safe to range over after releasing the read lock.
func (p *GrowableProvider) Epochs() []uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Collect(maps.Keys(p.tables))
}

// Membership is the §4.1 interface the rest of the core consumes:
// leader election, stake predicates, and threshold arithmetic, all
// deterministic functions of epoch alone.
type Membership struct {
	provider Provider
}

// New wraps provider as a Membership.
func New(provider Provider) *Membership {
	return &Membership{provider: provider}
}

func (m *Membership) table(epoch uint64) (*Table, error) {
	t, ok := m.provider.TableForEpoch(epoch)
	if !ok {
		return nil, errs.ErrUnknownEpoch
	}
	return t, nil
}

// Leader returns the deterministic leader of (view, epoch).
func (m *Membership) Leader(view, epoch uint64) (ids.NodeID, error) {
	t, err := m.table(epoch)
	if err != nil {
		return ids.NodeID{}, err
	}
	leader, ok := t.Leader(view)
	if !ok {
		return ids.NodeID{}, errs.ErrEmptyCommittee
	}
	return leader, nil
}

// HasStake reports whether key holds quorum-committee stake in epoch.
func (m *Membership) HasStake(key ids.NodeID, epoch uint64) bool {
	t, err := m.table(epoch)
	if err != nil {
		return false
	}
	return t.HasStake(key)
}

// HasDAStake reports whether key holds DA-committee stake in epoch.
func (m *Membership) HasDAStake(key ids.NodeID, epoch uint64) bool {
	t, err := m.table(epoch)
	if err != nil {
		return false
	}
	return t.HasDAStake(key)
}

// TotalNodes returns the quorum committee size for epoch.
func (m *Membership) TotalNodes(epoch uint64) int {
	t, err := m.table(epoch)
	if err != nil {
		return 0
	}
	return t.Len()
}

// SuccessThreshold returns the Byzantine-quorum stake for epoch.
func (m *Membership) SuccessThreshold(epoch uint64) (uint64, error) {
	t, err := m.table(epoch)
	if err != nil {
		return 0, err
	}
	return t.SuccessThreshold(), nil
}

// FailureThreshold returns the impossibility-proof stake for epoch.
func (m *Membership) FailureThreshold(epoch uint64) (uint64, error) {
	t, err := m.table(epoch)
	if err != nil {
		return 0, err
	}
	return t.FailureThreshold(), nil
}

// StakeTable returns the full ordered stake table for epoch.
func (m *Membership) StakeTable(epoch uint64) (*Table, error) {
	return m.table(epoch)
}
