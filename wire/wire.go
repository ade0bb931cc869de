// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire implements the canonical, deterministic byte encoding
// for proposals, votes, certificates, and the envelope that carries
// them over the network (§6, SUPPLEMENTED FEATURES item 5): fixed-
// width big-endian integers and length-prefixed byte strings, in the
// style of pkg/wire's Uint64ToBytes/BytesToUint64 helpers.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/vote"
	"github.com/luxfi/ids"
)

// nodeIDLen is the fixed width of an ids.NodeID on the wire.
const nodeIDLen = 20

// Uint64ToBytes converts n to its canonical big-endian encoding.
func Uint64ToBytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// BytesToUint64 decodes a canonical big-endian uint64.
func BytesToUint64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, fmt.Errorf("wire: short uint64 (%d bytes)", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *writer) u64(v uint64) { w.buf = append(w.buf, Uint64ToBytes(v)...) }
func (w *writer) bytes(b []byte) {
	w.u64(uint64(len(b)))
	w.buf = append(w.buf, b...)
}
func (w *writer) fixed(b []byte) { w.buf = append(w.buf, b...) }

type reader struct {
	buf []byte
	off int
}

func (r *reader) u8() (uint8, error) {
	if r.off+1 > len(r.buf) {
		return 0, fmt.Errorf("wire: short read (u8)")
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.off+8 > len(r.buf) {
		return 0, fmt.Errorf("wire: short read (u64)")
	}
	v := binary.BigEndian.Uint64(r.buf[r.off : r.off+8])
	r.off += 8
	return v, nil
}

func (r *reader) bytes() ([]byte, error) {
	n, err := r.u64()
	if err != nil {
		return nil, err
	}
	if r.off+int(n) > len(r.buf) {
		return nil, fmt.Errorf("wire: short read (bytes, want %d)", n)
	}
	b := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return b, nil
}

func (r *reader) fixed(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("wire: short read (fixed %d)", n)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// EncodeVote produces the canonical wire form of a vote (§6).
func EncodeVote(v vote.Vote) []byte {
	w := &writer{}
	w.u64(v.View)
	w.u8(uint8(v.Kind))
	w.fixed(v.Commit[:])
	w.fixed(v.Signer[:])
	w.bytes(crypto.SignatureBytes(v.Sig))
	return w.buf
}

// DecodeVote parses the canonical wire form of a vote.
func DecodeVote(b []byte) (vote.Vote, error) {
	r := &reader{buf: b}
	view, err := r.u64()
	if err != nil {
		return vote.Vote{}, err
	}
	kindByte, err := r.u8()
	if err != nil {
		return vote.Vote{}, err
	}
	commitBytes, err := r.fixed(32)
	if err != nil {
		return vote.Vote{}, err
	}
	signerBytes, err := r.fixed(nodeIDLen)
	if err != nil {
		return vote.Vote{}, err
	}
	sigBytes, err := r.bytes()
	if err != nil {
		return vote.Vote{}, err
	}
	sig, err := crypto.SignatureFromBytes(sigBytes)
	if err != nil {
		return vote.Vote{}, err
	}
	var commit crypto.Commitment
	copy(commit[:], commitBytes)
	var signer ids.NodeID
	copy(signer[:], signerBytes)
	return vote.Vote{
		View:   view,
		Kind:   crypto.Kind(kindByte),
		Commit: commit,
		Signer: signer,
		Sig:    sig,
	}, nil
}

// EncodeCertificate produces the canonical wire form of a
// certificate: the bitset is packed one byte per entry (0x00/0x01)
// rather than bit-packed, matching the teacher's preference for
// simple, inspectable wire shapes over density (candidate.go's
// Signers []byte is likewise a plain byte list, not a bitmap).
func EncodeCertificate(c *vote.Certificate) []byte {
	w := &writer{}
	w.u64(c.View)
	w.u8(uint8(c.Kind))
	w.fixed(c.Commit[:])
	w.bytes(crypto.SignatureBytes(c.AggSig))
	w.u64(uint64(len(c.Bitset)))
	for _, set := range c.Bitset {
		if set {
			w.u8(1)
		} else {
			w.u8(0)
		}
	}
	return w.buf
}

// DecodeCertificate parses the canonical wire form of a certificate.
func DecodeCertificate(b []byte) (*vote.Certificate, error) {
	r := &reader{buf: b}
	view, err := r.u64()
	if err != nil {
		return nil, err
	}
	kindByte, err := r.u8()
	if err != nil {
		return nil, err
	}
	commitBytes, err := r.fixed(32)
	if err != nil {
		return nil, err
	}
	aggSigBytes, err := r.bytes()
	if err != nil {
		return nil, err
	}
	aggSig, err := crypto.SignatureFromBytes(aggSigBytes)
	if err != nil {
		return nil, err
	}
	n, err := r.u64()
	if err != nil {
		return nil, err
	}
	bitset := make([]bool, n)
	for i := range bitset {
		v, err := r.u8()
		if err != nil {
			return nil, err
		}
		bitset[i] = v == 1
	}
	var commit crypto.Commitment
	copy(commit[:], commitBytes)
	return &vote.Certificate{
		View:   view,
		Kind:   crypto.Kind(kindByte),
		Commit: commit,
		AggSig: aggSig,
		Bitset: bitset,
	}, nil
}

// Proposal is the DA proposal body (§3, §4.5): a view, the hash of
// its encoded transactions, the raw payload bytes, and the leader's
// signature over that hash (§3 invariant: "signature_by_leader is a
// valid signature by the leader of (view, epoch) over the hash of
// encoded_transactions"). Sig is nil for a proposal that has not yet
// been signed (e.g. while under construction by the leader).
type Proposal struct {
	View    uint64
	Commit  crypto.Commitment
	Payload []byte
	Sig     *crypto.Signature
}

// EncodeProposal produces the canonical wire form of a proposal.
func EncodeProposal(p Proposal) []byte {
	w := &writer{}
	w.u64(p.View)
	w.fixed(p.Commit[:])
	w.bytes(p.Payload)
	if p.Sig != nil {
		w.bytes(crypto.SignatureBytes(p.Sig))
	} else {
		w.bytes(nil)
	}
	return w.buf
}

// DecodeProposal parses the canonical wire form of a proposal.
func DecodeProposal(b []byte) (Proposal, error) {
	r := &reader{buf: b}
	view, err := r.u64()
	if err != nil {
		return Proposal{}, err
	}
	commitBytes, err := r.fixed(32)
	if err != nil {
		return Proposal{}, err
	}
	payload, err := r.bytes()
	if err != nil {
		return Proposal{}, err
	}
	sigBytes, err := r.bytes()
	if err != nil {
		return Proposal{}, err
	}
	var sig *crypto.Signature
	if len(sigBytes) > 0 {
		sig, err = crypto.SignatureFromBytes(sigBytes)
		if err != nil {
			return Proposal{}, err
		}
	}
	var commit crypto.Commitment
	copy(commit[:], commitBytes)
	return Proposal{View: view, Commit: commit, Payload: payload, Sig: sig}, nil
}

// MessageKind tags the payload carried inside an Envelope.
type MessageKind uint8

const (
	KindProposal MessageKind = iota
	KindVote
	KindCertificate
)

// Envelope is the single tagged-union message wrapper every DA wire
// message travels in (SUPPLEMENTED FEATURES item 5): the sender's
// public key plus a signature over the hash of the inner payload,
// binding the transport-level sender to the payload regardless of
// which sub-protocol it belongs to.
type Envelope struct {
	Kind      MessageKind
	Sender    ids.NodeID
	SenderKey *crypto.PublicKey
	Payload   []byte
	Sig       *crypto.Signature
}

// PayloadHash returns the commitment an Envelope's Sig is computed
// over: H("envelope" || kind || payload).
func PayloadHash(kind MessageKind, payload []byte) crypto.Commitment {
	return crypto.LabelledHash("envelope",
		crypto.Field{Name: "kind", Value: []byte{byte(kind)}},
		crypto.Field{Name: "payload", Value: payload},
	)
}

// NewEnvelope builds and signs an Envelope over payload.
func NewEnvelope(kind MessageKind, sender ids.NodeID, sk *crypto.PrivateKey, payload []byte) (Envelope, error) {
	h := PayloadHash(kind, payload)
	sig, err := crypto.Sign(sk, h)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Kind:      kind,
		Sender:    sender,
		SenderKey: sk.PublicKey(),
		Payload:   payload,
		Sig:       sig,
	}, nil
}

// Verify checks that Sig is a valid signature by SenderKey over the
// envelope's payload hash.
func (e Envelope) Verify() bool {
	h := PayloadHash(e.Kind, e.Payload)
	return crypto.Verify(e.SenderKey, h, e.Sig)
}

// EncodeEnvelope produces the canonical wire form of an envelope.
func EncodeEnvelope(e Envelope) []byte {
	w := &writer{}
	w.u8(uint8(e.Kind))
	w.fixed(e.Sender[:])
	w.bytes(crypto.PublicKeyBytes(e.SenderKey))
	w.bytes(e.Payload)
	w.bytes(crypto.SignatureBytes(e.Sig))
	return w.buf
}

// DecodeEnvelope parses the canonical wire form of an envelope.
func DecodeEnvelope(b []byte) (Envelope, error) {
	r := &reader{buf: b}
	kindByte, err := r.u8()
	if err != nil {
		return Envelope{}, err
	}
	senderBytes, err := r.fixed(nodeIDLen)
	if err != nil {
		return Envelope{}, err
	}
	keyBytes, err := r.bytes()
	if err != nil {
		return Envelope{}, err
	}
	key, err := crypto.PublicKeyFromBytes(keyBytes)
	if err != nil {
		return Envelope{}, err
	}
	payload, err := r.bytes()
	if err != nil {
		return Envelope{}, err
	}
	sigBytes, err := r.bytes()
	if err != nil {
		return Envelope{}, err
	}
	sig, err := crypto.SignatureFromBytes(sigBytes)
	if err != nil {
		return Envelope{}, err
	}
	var sender ids.NodeID
	copy(sender[:], senderBytes)
	return Envelope{
		Kind:      MessageKind(kindByte),
		Sender:    sender,
		SenderKey: key,
		Payload:   payload,
		Sig:       sig,
	}, nil
}
