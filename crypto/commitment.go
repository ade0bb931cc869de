// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto implements the signing-and-commitments layer shared
// by every sub-protocol exchange: a domain-separated commitment
// scheme for vote data (§4.3) and thin signing/verification wrappers
// around BLS (§4.1 item 1). It deliberately knows nothing about
// views, epochs, or stake — those live in membership and vote.
package crypto

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Commitment is a fixed-size cryptographic digest of a typed value.
type Commitment [32]byte

// Bytes returns the commitment's byte representation.
func (c Commitment) Bytes() []byte { return c[:] }

// Hash returns the blake3 digest of data. Deterministic: identical
// bytes always produce identical commitments (P5).
func Hash(data []byte) Commitment {
	return Commitment(blake3.Sum256(data))
}

// Field is one named, ordered field of a labelled hash.
type Field struct {
	Name  string
	Value []byte
}

// LabelledHash computes H(tag || field_name || field_bytes) for each
// field in order. This is the commitment scheme behind every
// VoteData variant: a tag-plus-fields builder, not a raw hash of the
// concatenated bytes, so that two differently-shaped values can never
// collide on the same commitment.
func LabelledHash(tag string, fields ...Field) Commitment {
	h := blake3.New()
	writeLenPrefixed(h, []byte(tag))
	for _, f := range fields {
		writeLenPrefixed(h, []byte(f.Name))
		writeLenPrefixed(h, f.Value)
	}
	var out Commitment
	copy(out[:], h.Sum(nil))
	return out
}

func writeLenPrefixed(h *blake3.Hasher, b []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(b)))
	h.Write(lenBuf[:])
	h.Write(b)
}
