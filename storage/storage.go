// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storage implements the append_da persistence boundary (§6):
// idempotent-by-view payload storage, with an in-memory collaborator
// for tests and a github.com/cockroachdb/pebble-backed collaborator
// for production, grounded on the key-prefix and pebble.Sync idiom of
// pkg/storage/pebble_store.go.
package storage

import (
	"sync"
)

// Store is the persistence boundary the DA task writes through once a
// payload has been accepted for a view. AppendDA is idempotent: a
// second call for a view that is already stored is a no-op, not an
// error, mirroring storage.Store's own P1 (at most one payload per
// view) without requiring the caller to check first.
type Store interface {
	// AppendDA persists payload for view if no payload is already
	// stored for it.
	AppendDA(view uint64, payload []byte) error

	// GetDA returns the payload stored for view, if any.
	GetDA(view uint64) ([]byte, bool, error)

	// Close releases any underlying resources.
	Close() error
}

// MemStore is an in-memory Store for tests and for nodes that do not
// need persistence across restarts.
type MemStore struct {
	mu   sync.RWMutex
	data map[uint64][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[uint64][]byte)}
}

// AppendDA implements Store.
func (s *MemStore) AppendDA(view uint64, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[view]; exists {
		return nil
	}
	s.data[view] = payload
	return nil
}

// GetDA implements Store.
func (s *MemStore) GetDA(view uint64) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[view]
	return p, ok, nil
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }

var _ Store = (*MemStore)(nil)
