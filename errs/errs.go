// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package errs classifies the error kinds the core produces, per the
// propagation policy described for the DA task: validation failures
// are logged and dropped, transient failures are retried where safe,
// fatal failures are surfaced to the harness.
package errs

import "errors"

// Kind distinguishes how a caller must react to an error.
type Kind int

const (
	// Validation errors are logged and dropped; the protocol is
	// liveness-tolerant to dropped messages.
	Validation Kind = iota
	// Transient errors (bus-full, storage-busy) are retried by the
	// caller only where it is safe, otherwise surfaced to the host.
	Transient
	// Fatal errors must terminate the node to preserve safety.
	Fatal
)

// Error wraps a sentinel reason with a Kind so callers can branch on
// the classification without string matching.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match against the sentinel by reason text so a
// wrapped instance (via WithCause) still compares equal to its base.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Reason == te.Reason
}

// WithCause attaches an underlying cause while preserving Kind and
// Reason for errors.Is comparisons against the sentinel.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, Err: cause}
}

// KindOf reports the Kind of err, defaulting to Validation for errors
// that were never classified (e.g. a plain error from a collaborator).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Validation
}

// Validation-kind sentinels named directly after the spec's error
// kinds (§7, §4.5, §4.2).
var (
	ErrStaleView        = &Error{Kind: Validation, Reason: "stale view"}
	ErrDuplicatePayload = &Error{Kind: Validation, Reason: "duplicate payload"}
	ErrWrongLeader      = &Error{Kind: Validation, Reason: "wrong leader"}
	ErrBadSignature     = &Error{Kind: Validation, Reason: "bad signature"}
	ErrNotLeader        = &Error{Kind: Validation, Reason: "not leader"}
	ErrUnknownSigner    = &Error{Kind: Validation, Reason: "unknown signer"}
	ErrDuplicateSigner  = &Error{Kind: Validation, Reason: "duplicate signer"}
	ErrInvalidSignature = &Error{Kind: Validation, Reason: "invalid signature"}
	ErrCommitMismatch   = &Error{Kind: Validation, Reason: "commitment mismatch across signers"}
	ErrUnknownEpoch     = &Error{Kind: Validation, Reason: "unknown epoch"}
	ErrEmptyCommittee   = &Error{Kind: Validation, Reason: "empty committee"}
	ErrBitsetSize       = &Error{Kind: Validation, Reason: "bitset size does not match stake table"}
	ErrThresholdNotMet  = &Error{Kind: Validation, Reason: "selected stake below success threshold"}
	ErrBadAggregate     = &Error{Kind: Validation, Reason: "aggregate signature does not verify"}
)

// Transient-kind sentinels.
var (
	ErrBusFull     = &Error{Kind: Transient, Reason: "event bus full"}
	ErrStorageBusy = &Error{Kind: Transient, Reason: "storage busy"}
)

// Fatal-kind sentinels.
var (
	ErrStorageCorrupt     = &Error{Kind: Fatal, Reason: "storage corrupt"}
	ErrInvariantBroken    = &Error{Kind: Fatal, Reason: "invariant violation"}
	ErrConfigInconsistent = &Error{Kind: Fatal, Reason: "configuration inconsistent"}
	ErrOwnSigningFailed   = &Error{Kind: Fatal, Reason: "local signing failed"}
)
