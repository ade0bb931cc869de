// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sender bridges the DA task's outbound events
// (DaProposalSend, DaVoteSend, DaCertificateSend) onto a
// network.Channel, the way networking/sender.Sender sits between the
// engine and the transport: da.Task never touches Channel.Broadcast*
// or SendDAVote itself, it only publishes an intent to the bus.
package sender

import (
	"context"

	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/hotda/eventbus"
	"github.com/luxfi/hotda/exchange"
	"github.com/luxfi/hotda/logging"
	"github.com/luxfi/hotda/wire"
)

// Task forwards DA send-intent events onto an exchange's network
// channel, wrapping each payload in a signed Envelope (SUPPLEMENTED
// FEATURES item 5) before handing it to the transport.
type Task struct {
	exchange *exchange.Exchange
	curEpoch uint64
	log      logging.Logger
}

// New builds a sender Task for one exchange.
func New(ex *exchange.Exchange, log logging.Logger) *Task {
	return &Task{exchange: ex, log: logging.WithComponent(log, "sender")}
}

// Name implements task.Task.
func (t *Task) Name() string { return "sender" }

// Shutdown implements task.Task; sender holds no resources of its own.
func (t *Task) Shutdown(_ context.Context) error { return nil }

// Handle implements task.Task.
func (t *Task) Handle(ctx context.Context, ev eventbus.Event) error {
	switch e := ev.(type) {
	case eventbus.DaProposalSend:
		return t.sendProposal(ctx, e)
	case eventbus.DaVoteSend:
		return t.sendVote(ctx, e)
	case eventbus.DaCertificateSend:
		return t.sendCertificate(ctx, e)
	case eventbus.ViewChange:
		if e.Epoch > t.curEpoch {
			t.curEpoch = e.Epoch
		}
		return nil
	default:
		return nil
	}
}

func (t *Task) sendProposal(ctx context.Context, e eventbus.DaProposalSend) error {
	env, err := wire.NewEnvelope(wire.KindProposal, t.exchange.NodeID, t.exchange.PrivateKey, wire.EncodeProposal(e.Proposal))
	if err != nil {
		return errs.ErrOwnSigningFailed.WithCause(err)
	}
	if err := t.exchange.Channel.BroadcastDAProposal(ctx, env); err != nil {
		return errs.ErrBusFull.WithCause(err)
	}
	return nil
}

func (t *Task) sendVote(ctx context.Context, e eventbus.DaVoteSend) error {
	leader, err := t.exchange.Membership.Leader(e.Vote.View, t.curEpoch)
	if err != nil {
		return err
	}
	env, err := wire.NewEnvelope(wire.KindVote, t.exchange.NodeID, t.exchange.PrivateKey, wire.EncodeVote(e.Vote))
	if err != nil {
		return errs.ErrOwnSigningFailed.WithCause(err)
	}
	if err := t.exchange.Channel.SendDAVote(ctx, leader, env); err != nil {
		return errs.ErrBusFull.WithCause(err)
	}
	return nil
}

func (t *Task) sendCertificate(ctx context.Context, e eventbus.DaCertificateSend) error {
	env, err := wire.NewEnvelope(wire.KindCertificate, t.exchange.NodeID, t.exchange.PrivateKey, wire.EncodeCertificate(e.Certificate))
	if err != nil {
		return errs.ErrOwnSigningFailed.WithCause(err)
	}
	if err := t.exchange.Channel.BroadcastDACertificate(ctx, env); err != nil {
		return errs.ErrBusFull.WithCause(err)
	}
	return nil
}
