// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is a production Store backed by a pebble key-value
// database. Keys are prefixed "d:" followed by the view's 8-byte
// big-endian encoding, following pkg/storage/pebble_store.go's
// kBlock/kCert prefix-plus-fixed-key convention.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (or creates) a pebble database at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open pebble at %q: %w", path, err)
	}
	return &PebbleStore{db: db}, nil
}

func daKey(view uint64) []byte {
	key := make([]byte, 2+8)
	copy(key, "d:")
	binary.BigEndian.PutUint64(key[2:], view)
	return key
}

// AppendDA implements Store. Idempotent: an existing value for view
// is left untouched rather than overwritten.
func (s *PebbleStore) AppendDA(view uint64, payload []byte) error {
	key := daKey(view)
	if _, closer, err := s.db.Get(key); err == nil {
		closer.Close()
		return nil
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("storage: check existing DA payload for view %d: %w", view, err)
	}
	if err := s.db.Set(key, payload, pebble.Sync); err != nil {
		return fmt.Errorf("storage: append DA payload for view %d: %w", view, err)
	}
	return nil
}

// GetDA implements Store.
func (s *PebbleStore) GetDA(view uint64) ([]byte, bool, error) {
	val, closer, err := s.db.Get(daKey(view))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: get DA payload for view %d: %w", view, err)
	}
	defer closer.Close()
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

// Close implements Store.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}

var _ Store = (*PebbleStore)(nil)
