// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"github.com/luxfi/crypto/bls"
)

// PrivateKey, PublicKey, and Signature alias the BLS primitives so
// every caller in this module signs and verifies through one door,
// keeping the aggregate-signature scheme (§4.2 step 3, §4.4 step 4)
// swappable without touching call sites.
type (
	PrivateKey = bls.SecretKey
	PublicKey  = bls.PublicKey
	Signature  = bls.Signature
)

// GenerateKey produces a fresh keypair. Used by tests and by node
// bootstrap when no persisted key material exists yet.
func GenerateKey() (*PrivateKey, error) {
	return bls.NewSecretKey()
}

// Sign signs a vote-data commitment. Commitments are already
// version-bound by VoteData.Commitment, so the signature itself
// carries no separate versioning concern. A signing failure from this
// node's own key is fatal to the caller, never retried.
func Sign(sk *PrivateKey, commit Commitment) (*Signature, error) {
	return sk.Sign(commit.Bytes())
}

// Verify checks a single signer's signature over commit under pk.
func Verify(pk *PublicKey, commit Commitment, sig *Signature) bool {
	if pk == nil || sig == nil {
		return false
	}
	return bls.Verify(pk, sig, commit.Bytes())
}

// Aggregate folds N partial signatures over the same commitment into
// one aggregate signature (§4.2 step 3, "fold the signature into the
// aggregate").
func Aggregate(sigs []*Signature) (*Signature, error) {
	return bls.AggregateSignatures(sigs)
}

// PublicKeyBytes returns the canonical compressed encoding of pk,
// going through this package's single door rather than letting
// callers reach into the bls type directly.
func PublicKeyBytes(pk *PublicKey) []byte {
	return bls.PublicKeyToCompressedBytes(pk)
}

// PublicKeyFromBytes parses the canonical compressed encoding of a
// public key.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	return bls.PublicKeyFromCompressedBytes(b)
}

// SignatureBytes returns the canonical encoding of sig.
func SignatureBytes(sig *Signature) []byte {
	return bls.SignatureToBytes(sig)
}

// SignatureFromBytes parses the canonical encoding of a signature.
func SignatureFromBytes(b []byte) (*Signature, error) {
	return bls.SignatureFromBytes(b)
}

// VerifyAggregate checks an aggregate signature over commit against
// the set of public keys selected by a certificate's bitset (§4.4
// step 4). Every member must have co-signed the identical commitment,
// so the aggregate public key verifies the aggregate signature over
// the one shared message.
func VerifyAggregate(pks []*PublicKey, commit Commitment, agg *Signature) bool {
	if agg == nil || len(pks) == 0 {
		return false
	}
	aggPK, err := bls.AggregatePublicKeys(pks)
	if err != nil {
		return false
	}
	return bls.Verify(aggPK, agg, commit.Bytes())
}
