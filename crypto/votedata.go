// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import "encoding/binary"

// Kind tags which sub-protocol value is being voted on. Wrapping a
// commitment in a Kind before signing is what stops a Yes-vote over
// commitment X from being replayed as a DA-vote over the same X
// (§4.3).
type Kind uint8

const (
	KindDA Kind = iota
	KindYes
	KindNo
	KindTimeout
	KindViewSyncPreCommit
	KindViewSyncCommit
	KindViewSyncFinalize
)

func (k Kind) String() string {
	switch k {
	case KindDA:
		return "DA"
	case KindYes:
		return "Yes"
	case KindNo:
		return "No"
	case KindTimeout:
		return "Timeout"
	case KindViewSyncPreCommit:
		return "ViewSyncPreCommit"
	case KindViewSyncCommit:
		return "ViewSyncCommit"
	case KindViewSyncFinalize:
		return "ViewSyncFinalize"
	default:
		return "Unknown"
	}
}

func (k Kind) tag() string {
	switch k {
	case KindDA:
		return "DA Block Commit"
	case KindYes:
		return "Yes Vote Commit"
	case KindNo:
		return "No Vote Commit"
	case KindTimeout:
		return "Timeout View Number Commit"
	case KindViewSyncPreCommit:
		return "ViewSyncPreCommit"
	case KindViewSyncCommit:
		return "ViewSyncCommit"
	case KindViewSyncFinalize:
		return "ViewSyncFinalize"
	default:
		return "Unknown Vote Commit"
	}
}

func (k Kind) fieldName() string {
	switch k {
	case KindDA:
		return "block_commitment"
	case KindYes, KindNo:
		return "leaf_commitment"
	case KindTimeout:
		return "view_number_commitment"
	default:
		return "commitment"
	}
}

// VoteData is the domain-separated wrapper every signed value passes
// through before it is signed or verified.
type VoteData struct {
	Kind   Kind
	Commit Commitment
}

// Commitment returns the labelled hash that is actually signed. The
// version parameter is the upgrade-lock's current protocol version
// (design notes §9, "Upgrade lock"): binding it into the commitment
// means a version bump alone invalidates cross-version signature
// reuse, with no change to the Kind/Commit shape.
func (v VoteData) Commitment(version uint64) Commitment {
	var versionBytes [8]byte
	binary.BigEndian.PutUint64(versionBytes[:], version)
	return LabelledHash(
		v.Kind.tag(),
		Field{Name: v.Kind.fieldName(), Value: v.Commit.Bytes()},
		Field{Name: "version", Value: versionBytes[:]},
	)
}
