// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package consensusstate implements the shared, single-writer-
// disciplined view of per-view payload commitments, saved payloads,
// and VID shares described in §3 and §5: one protected object with
// distinct read and write acquisition, a short write lock never held
// across any other lock, and garbage collection on view change (P6).
package consensusstate

import (
	"sync"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/errs"
)

// VIDShare is a placeholder for a per-node VID share (§3 "per-view
// VID shares"); the erasure-coding scheme itself is out of this
// module's scope (spec Non-goals).
type VIDShare struct {
	Commit crypto.Commitment
	Data   []byte
}

// State is the consensus-state object the DA task reads and writes.
type State struct {
	mu sync.RWMutex

	curView       uint64
	daView        map[uint64]crypto.Commitment
	savedPayloads map[uint64][]byte
	vidShares     map[uint64]map[string]VIDShare
}

// New returns an empty State at view 0.
func New() *State {
	return &State{
		daView:        make(map[uint64]crypto.Commitment),
		savedPayloads: make(map[uint64][]byte),
		vidShares:     make(map[uint64]map[string]VIDShare),
	}
}

// CurView returns the current view under a read lock.
func (s *State) CurView() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curView
}

// HasSavedPayload reports whether a payload has already been saved
// for view (§4.5 DaProposalRecv step 2).
func (s *State) HasSavedPayload(view uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.savedPayloads[view]
	return ok
}

// SavedPayload returns the saved payload for view, if any.
func (s *State) SavedPayload(view uint64) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.savedPayloads[view]
	return p, ok
}

// DAView returns the recorded payload commitment for view, if any.
func (s *State) DAView(view uint64) (crypto.Commitment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.daView[view]
	return c, ok
}

// UpdateDAView records view -> commit (§4.5 DaProposalValidated step
// 3d). Never fails: the write is unconditional, with no view-window
// check, so the caller has no error to log or swallow.
func (s *State) UpdateDAView(view uint64, commit crypto.Commitment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daView[view] = commit
}

// UpdateSavedPayload records the payload this node has promised to
// make available for view. Returns ErrDuplicatePayload if one is
// already recorded (P1: at most one payload per view) — the DA task
// logs this and continues; it does not abort the vote, since the vote
// is emitted before this call (§4.5 step 3d, §9 supplemented
// feature 3).
func (s *State) UpdateSavedPayload(view uint64, txns []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.savedPayloads[view]; exists {
		return errs.ErrDuplicatePayload
	}
	s.savedPayloads[view] = txns
	return nil
}

// SetCurView advances the current view. Epoch only ever advances
// upstream of this call (§4.5 ViewChange step 1); view is required to
// be monotone non-decreasing here too, mirroring the same guarantee.
func (s *State) SetCurView(view uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view > s.curView {
		s.curView = view
	}
}

// GC drops all per-view state below curView - window, implementing
// P6 (GC monotonicity). A no-op if curView has not yet advanced past
// window.
func (s *State) GC(window uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curView <= window {
		return
	}
	floor := s.curView - window
	for v := range s.daView {
		if v < floor {
			delete(s.daView, v)
		}
	}
	for v := range s.savedPayloads {
		if v < floor {
			delete(s.savedPayloads, v)
		}
	}
	for v := range s.vidShares {
		if v < floor {
			delete(s.vidShares, v)
		}
	}
}

// UpdateVIDShareIfLive writes a VID share for (view, signer) unless
// view already falls below the GC horizon relative to the current
// view — the view-window guard a detached optimistic-VID task must
// check under this same write lock (design notes §9, "Optimistic VID
// spawn"). Returns false if the write was discarded as stale.
func (s *State) UpdateVIDShareIfLive(view, window uint64, signer string, share VIDShare) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curView > window && view < s.curView-window {
		return false
	}
	m, ok := s.vidShares[view]
	if !ok {
		m = make(map[string]VIDShare)
		s.vidShares[view] = m
	}
	m[signer] = share
	return true
}

// VIDShare returns the recorded VID share for (view, signer), if any.
func (s *State) VIDShare(view uint64, signer string) (VIDShare, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.vidShares[view]
	if !ok {
		return VIDShare{}, false
	}
	sh, ok := m[signer]
	return sh, ok
}
