// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventbus

import (
	"github.com/luxfi/hotda/consensusstate"
	"github.com/luxfi/hotda/vote"
	"github.com/luxfi/hotda/wire"
	"github.com/luxfi/ids"
)

// Event is the closed set of events the DA task and its collaborators
// exchange over the bus (§4.6), one constructor-typed struct per
// variant in place of the original's single tagged HotShotEvent enum.
type Event interface {
	isEvent()
}

// DaProposalRecv is emitted when a DA proposal arrives off the
// network, before any validation.
type DaProposalRecv struct {
	Proposal wire.Proposal
	Sender   ids.NodeID
}

// DaProposalValidated is emitted once a DA proposal has passed
// leader/staleness/signature checks (§4.5 step 3).
type DaProposalValidated struct {
	Proposal wire.Proposal
	Sender   ids.NodeID
}

// DaProposalSend is emitted by the leader task to broadcast its own
// proposal.
type DaProposalSend struct {
	Proposal wire.Proposal
}

// DaVoteRecv is emitted when a DA vote arrives off the network.
type DaVoteRecv struct {
	Vote vote.Vote
}

// DaVoteSend is emitted once this node has cast its own DA vote.
type DaVoteSend struct {
	Vote vote.Vote
}

// DaCertificateSend is emitted once a DA certificate has been
// assembled and is ready to broadcast.
type DaCertificateSend struct {
	Certificate *vote.Certificate
}

// BlockRecv is emitted when a new block is available to disperse as a
// DA payload.
type BlockRecv struct {
	View    uint64
	Payload []byte
}

// ViewChange is emitted whenever the node's current view advances.
type ViewChange struct {
	View  uint64
	Epoch uint64
}

// VidShareRecv is emitted when a VID share for a view has been
// computed or received.
type VidShareRecv struct {
	View   uint64
	Signer ids.NodeID
	Share  consensusstate.VIDShare
}

// Shutdown is emitted to terminate every registered task.
type Shutdown struct{}

func (DaProposalRecv) isEvent()      {}
func (DaProposalValidated) isEvent() {}
func (DaProposalSend) isEvent()      {}
func (DaVoteRecv) isEvent()          {}
func (DaVoteSend) isEvent()          {}
func (DaCertificateSend) isEvent()   {}
func (BlockRecv) isEvent()           {}
func (ViewChange) isEvent()          {}
func (VidShareRecv) isEvent()        {}
func (Shutdown) isEvent()            {}
