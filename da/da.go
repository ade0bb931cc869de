// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package da implements the DA committee task state machine (§4.5):
// validate incoming proposals, offload VID commitment computation
// onto a bounded worker pool, cast and collect votes, assemble and
// broadcast certificates, and track view changes — a direct
// translation of da.rs's DaTaskState and its handle method into this
// module's event/task shape.
package da

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/luxfi/hotda/config"
	"github.com/luxfi/hotda/consensusstate"
	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/hotda/eventbus"
	"github.com/luxfi/hotda/exchange"
	"github.com/luxfi/hotda/logging"
	"github.com/luxfi/hotda/metrics"
	"github.com/luxfi/hotda/storage"
	"github.com/luxfi/hotda/vid"
	"github.com/luxfi/hotda/vote"
	"github.com/luxfi/hotda/wire"
)

// upgradeVersion is the protocol version bound into every signed
// commitment via crypto.VoteData.Commitment. This task does not yet
// implement an upgrade lock (out of scope); version 0 is the only
// version in effect.
const upgradeVersion uint64 = 0

// Task is the DA committee's event handler. One Task runs per node,
// registered with a task.Harness alongside the other tasks it shares
// an event bus with (such as sender.Task).
type Task struct {
	id uint64

	exchange *exchange.Exchange
	state    *consensusstate.State
	store    storage.Store
	scheme   vid.Scheme
	cfg      *config.Config
	metrics  *metrics.Metrics
	log      logging.Logger

	curEpoch uint64

	// vidSem bounds how many VID commitments compute concurrently,
	// keeping the CPU-bound work off the event-dispatch goroutine
	// without spawning unboundedly many workers (§5, SUPPLEMENTED
	// FEATURES item 2).
	vidSem *semaphore.Weighted

	bus *eventbus.Bus
}

// New builds a DA Task. bus is used only to publish events this
// task produces (DaProposalValidated, DaProposalSend, DaVoteSend,
// DaCertificateSend, VidShareRecv); events are delivered to Handle by a task.Harness
// sharing the same bus.
func New(
	id uint64,
	ex *exchange.Exchange,
	state *consensusstate.State,
	store storage.Store,
	scheme vid.Scheme,
	cfg *config.Config,
	m *metrics.Metrics,
	log logging.Logger,
	bus *eventbus.Bus,
) *Task {
	return &Task{
		id:       id,
		exchange: ex,
		state:    state,
		store:    store,
		scheme:   scheme,
		cfg:      cfg,
		metrics:  m,
		log:      logging.WithComponent(log, "da").With("id", id),
		vidSem:   semaphore.NewWeighted(int64(cfg.VIDWorkerPoolSize)),
		bus:      bus,
	}
}

// Name implements task.Task.
func (t *Task) Name() string { return "da" }

// Shutdown implements task.Task. The DA task holds no resources of
// its own beyond what the host owns (store, network); nothing to
// release here.
func (t *Task) Shutdown(_ context.Context) error { return nil }

// Handle dispatches one event, following da.rs's handle match arm by
// arm.
func (t *Task) Handle(ctx context.Context, ev eventbus.Event) error {
	switch e := ev.(type) {
	case eventbus.DaProposalRecv:
		return t.handleDaProposalRecv(ctx, e)
	case eventbus.DaProposalValidated:
		return t.handleDaProposalValidated(ctx, e)
	case eventbus.DaVoteRecv:
		return t.handleDaVoteRecv(e)
	case eventbus.ViewChange:
		return t.handleViewChange(e)
	case eventbus.BlockRecv:
		return t.handleBlockRecv(e)
	default:
		return nil
	}
}

// handleDaProposalRecv validates a freshly-received proposal (§4.5
// step 1): staleness, duplicate-payload, leader identity, and
// signature, in that order, then re-publishes it as
// DaProposalValidated. Allows a proposal that is exactly one view
// older than cur_view (design notes §9, "in case we have voted on a
// quorum proposal and updated the view"); anything older is
// discarded.
func (t *Task) handleDaProposalRecv(_ context.Context, e eventbus.DaProposalRecv) error {
	view := e.Proposal.View
	curView := t.state.CurView()

	if curView > view+1 {
		t.metrics.ProposalsRejected.WithLabelValues("stale").Inc()
		return errs.ErrStaleView.WithCause(fmt.Errorf("view %d more than one view behind current %d", view, curView))
	}

	if t.state.HasSavedPayload(view) {
		t.metrics.ProposalsRejected.WithLabelValues("duplicate").Inc()
		return errs.ErrDuplicatePayload
	}

	h := crypto.Hash(e.Proposal.Payload)

	leader, err := t.exchange.Membership.Leader(view, t.curEpoch)
	if err != nil {
		t.metrics.ProposalsRejected.WithLabelValues("leader-lookup").Inc()
		return err
	}
	if leader != e.Sender {
		t.metrics.ProposalsRejected.WithLabelValues("wrong-leader").Inc()
		return errs.ErrWrongLeader
	}

	table, err := t.exchange.Membership.StakeTable(t.curEpoch)
	if err != nil {
		return err
	}
	idx, _, ok := table.Lookup(leader)
	if !ok {
		t.metrics.ProposalsRejected.WithLabelValues("unknown-leader").Inc()
		return errs.ErrUnknownSigner
	}

	if h != e.Proposal.Commit || !crypto.Verify(table.Entry(idx).PubKey, h, e.Proposal.Sig) {
		t.metrics.ProposalsRejected.WithLabelValues("bad-signature").Inc()
		return errs.ErrBadSignature
	}

	t.metrics.ProposalsReceived.Inc()
	t.bus.Publish(eventbus.DaProposalValidated{Proposal: e.Proposal, Sender: e.Sender})
	return nil
}

// handleDaProposalValidated re-checks staleness against a current
// view that may have advanced since DaProposalRecv (§4.5 step 2,
// checked independently a second time: design notes §9,
// "double staleness check" — validation can race a ViewChange event),
// then computes VID off a bounded worker, persists the payload, casts
// this node's vote, and records the write-ahead state.
func (t *Task) handleDaProposalValidated(ctx context.Context, e eventbus.DaProposalValidated) error {
	view := e.Proposal.View
	curView := t.state.CurView()
	if curView > view+1 {
		t.log.Debug("validated DA proposal is now too old", "view", view, "curView", curView)
		return errs.ErrStaleView
	}

	if !t.exchange.Membership.HasDAStake(t.exchange.NodeID, t.curEpoch) {
		t.log.Debug("not on the DA committee for this epoch", "view", view)
		return nil
	}

	// The payload commitment voted on is the VID commitment, which is
	// deliberately a different value from e.Proposal.Commit (the hash
	// of encoded_transactions the leader's signature covers, already
	// checked in handleDaProposalRecv): VID_commit is parameterised by
	// committee size and is computed independently by every DA member
	// rather than carried pre-computed on the wire (§3, §4.5 step 3a).
	commit, err := t.computeVID(ctx, e.Proposal.Payload)
	if err != nil {
		return err
	}

	if err := t.store.AppendDA(view, e.Proposal.Payload); err != nil {
		return errs.ErrStorageBusy.WithCause(err)
	}

	// Vote is cast before any further consensus-state bookkeeping: a
	// failure recording that bookkeeping must never cost this node
	// its vote (§9, supplemented feature 3).
	v, err := t.exchange.CastVote(view, commit, upgradeVersion)
	if err != nil {
		return errs.ErrOwnSigningFailed.WithCause(err)
	}
	t.bus.Publish(eventbus.DaVoteSend{Vote: v})

	t.state.UpdateDAView(view, commit)
	if err := t.state.UpdateSavedPayload(view, e.Proposal.Payload); err != nil {
		t.log.Debug("saved payload already recorded", "view", view, "err", err)
	}

	if t.cfg.PrimaryNetworkDownOptimisticVID && t.exchange.Channel.IsPrimaryDown() {
		t.maybeSpawnOptimisticVID(view, e.Proposal.Payload)
	}

	return nil
}

// computeVID runs scheme.Commit under vidSem, blocking the caller
// until a worker is free and the commitment is ready (§5: VID
// computation is CPU-bound and must never run inline on the
// dispatch goroutine, but the vote cannot be cast before it
// completes, so the handler blocks rather than returning early).
func (t *Task) computeVID(ctx context.Context, payload []byte) (crypto.Commitment, error) {
	if err := t.vidSem.Acquire(ctx, 1); err != nil {
		return crypto.Commitment{}, errs.ErrStorageBusy.WithCause(err)
	}
	defer t.vidSem.Release(1)

	type result struct {
		commit crypto.Commitment
		err    error
	}
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		commit, err := t.scheme.Commit(ctx, payload)
		done <- result{commit, err}
	}()

	select {
	case <-ctx.Done():
		return crypto.Commitment{}, ctx.Err()
	case r := <-done:
		t.metrics.VIDCommitDuration.Observe(time.Since(start).Seconds())
		return r.commit, r.err
	}
}

// maybeSpawnOptimisticVID recomputes and records this node's VID
// share on a detached goroutine when the primary quorum network
// appears unreachable (§9, supplemented feature 4). The goroutine
// races arbitrarily far past subsequent view changes; it is safe only
// because consensusstate.State.UpdateVIDShareIfLive re-checks the
// view-GC-window guard under its own write lock before writing, so a
// long-stale write is silently discarded rather than corrupting state
// for a view that has already rolled off.
func (t *Task) maybeSpawnOptimisticVID(view uint64, payload []byte) {
	go func() {
		ctx := context.Background()
		commit, err := t.scheme.Commit(ctx, payload)
		if err != nil {
			t.log.Debug("optimistic VID computation failed", "view", view, "err", err)
			return
		}
		share := consensusstate.VIDShare{Commit: commit, Data: payload}
		signer := t.exchange.NodeID.String()
		if !t.state.UpdateVIDShareIfLive(view, t.cfg.GCWindowViews, signer, share) {
			t.log.Debug("optimistic VID share discarded, view garbage collected", "view", view)
			return
		}
		t.bus.Publish(eventbus.VidShareRecv{View: view, Signer: t.exchange.NodeID, Share: share})
	}()
}

// handleDaVoteRecv folds a vote into this view's accumulator, only
// if this node is the DA committee leader for that view — leader
// election for vote collection is per-view, mirroring da.rs's guard
// on self.membership.leader(view, ...) == self.public_key.
func (t *Task) handleDaVoteRecv(e eventbus.DaVoteRecv) error {
	v := e.Vote

	// A vote for a view the accumulator layer has already garbage
	// collected must be dropped before it ever reaches Collectors:
	// GetOrCreate has no memory of which views were GC'd and would
	// otherwise resurrect a fresh accumulator for a view that should
	// stay permanently gone (§4.2 StaleView, §8 scenario 6).
	if floor := gcFloor(t.state.CurView(), t.cfg.GCWindowViews); v.View < floor {
		t.metrics.VotesRejected.WithLabelValues("stale").Inc()
		return errs.ErrStaleView
	}

	leader, err := t.exchange.Membership.Leader(v.View, t.curEpoch)
	if err != nil {
		return err
	}
	if leader != t.exchange.NodeID {
		nextLeader, nextErr := t.exchange.Membership.Leader(v.View+1, t.curEpoch)
		areWeNextLeader := nextErr == nil && nextLeader == t.exchange.NodeID
		t.log.Debug("not the DA leader for this view, dropping vote",
			"view", v.View, "areWeNextLeader", areWeNextLeader)
		t.metrics.VotesRejected.WithLabelValues("not-leader").Inc()
		return errs.ErrNotLeader
	}

	table, err := t.exchange.Membership.StakeTable(t.curEpoch)
	if err != nil {
		return err
	}
	acc := t.exchange.Collectors.GetOrCreate(v.View, v.Kind, table, upgradeVersion)
	outcome, cert, err := acc.Append(v)
	if err != nil {
		t.metrics.VotesRejected.WithLabelValues("invalid").Inc()
		return err
	}
	t.metrics.VotesReceived.Inc()

	if outcome == vote.Emitted {
		t.exchange.Collectors.Drop(v.View, v.Kind)
		t.metrics.CertificatesEmitted.Inc()
		t.bus.Publish(eventbus.DaCertificateSend{Certificate: cert})
	}
	return nil
}

// handleViewChange advances the node's current view and epoch (§4.5
// step 4). A view change to a view no further ahead than the current
// one is rejected as stale; epoch only ever moves forward.
func (t *Task) handleViewChange(e eventbus.ViewChange) error {
	if e.Epoch > t.curEpoch {
		t.curEpoch = e.Epoch
	}
	curView := t.state.CurView()
	if e.View <= curView {
		return errs.ErrStaleView
	}
	if e.View-curView > 1 {
		t.log.Info("view advanced by more than one", "from", curView, "to", e.View)
	}
	t.state.SetCurView(e.View)
	t.state.GC(t.cfg.GCWindowViews)
	t.exchange.Collectors.GC(gcFloor(e.View, t.cfg.GCWindowViews))
	t.metrics.CurrentView.Set(float64(e.View))
	return nil
}

func gcFloor(curView, window uint64) uint64 {
	if curView <= window {
		return 0
	}
	return curView - window
}

// handleBlockRecv builds and signs this node's own DA proposal for a
// freshly available block (§4.5 step 5): sign the hash of the
// encoded transactions, not the VID commitment, since the commitment
// is not yet known to the proposer's peers at broadcast time.
func (t *Task) handleBlockRecv(e eventbus.BlockRecv) error {
	commit := crypto.Hash(e.Payload)

	sig, err := t.exchange.SignProposalHash(commit)
	if err != nil {
		return errs.ErrOwnSigningFailed.WithCause(err)
	}
	proposal := wire.Proposal{
		View:    e.View,
		Commit:  commit,
		Payload: e.Payload,
		Sig:     sig,
	}
	t.bus.Publish(eventbus.DaProposalSend{Proposal: proposal})
	return nil
}
