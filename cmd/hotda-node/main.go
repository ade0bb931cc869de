// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command hotda-node wires the DA task, its sender, and a process
// harness into one runnable binary, in the spirit of cmd/sim's flag-
// driven bootstrap (this command runs one live node rather than a
// simulated population, so it skips cmd/sim's Byzantine/round flags
// in favor of storage and committee wiring).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/hotda/config"
	"github.com/luxfi/hotda/consensusstate"
	"github.com/luxfi/hotda/crypto"
	"github.com/luxfi/hotda/da"
	"github.com/luxfi/hotda/errs"
	"github.com/luxfi/hotda/eventbus"
	"github.com/luxfi/hotda/exchange"
	"github.com/luxfi/hotda/logging"
	"github.com/luxfi/hotda/membership"
	"github.com/luxfi/hotda/metrics"
	"github.com/luxfi/hotda/network/networkmock"
	"github.com/luxfi/hotda/sender"
	"github.com/luxfi/hotda/storage"
	"github.com/luxfi/hotda/task"
	"github.com/luxfi/hotda/vid"
	"github.com/luxfi/ids"
)

func main() {
	totalNodes := flag.Int("nodes", 1, "total committee size")
	daCommittee := flag.Int("da-committee", 1, "DA committee size")
	gcWindow := flag.Uint64("gc-window", 100, "view GC window")
	vidWorkers := flag.Int("vid-workers", 4, "VID worker pool size")
	storeKind := flag.String("store", "mem", "storage backend: mem or pebble")
	pebblePath := flag.String("pebble-path", "./hotda-data", "pebble database path, when -store=pebble")
	flag.Parse()

	if err := run(*totalNodes, *daCommittee, *gcWindow, *vidWorkers, *storeKind, *pebblePath); err != nil {
		fmt.Fprintf(os.Stderr, "hotda-node: %v\n", err)
		os.Exit(1)
	}
}

func run(totalNodes, daCommittee int, gcWindow uint64, vidWorkers int, storeKind, pebblePath string) error {
	log := logging.NewNop()

	sk, err := crypto.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate node key: %w", err)
	}
	var nodeID ids.NodeID
	copy(nodeID[:], crypto.PublicKeyBytes(sk.PublicKey()))

	entries := []membership.Entry{{NodeID: nodeID, PubKey: sk.PublicKey(), Stake: 1, DAStake: true}}
	table := membership.NewTable(0, entries)
	mem := membership.New(membership.NewStaticProvider(map[uint64]*membership.Table{0: table}))

	// A live deployment plugs network.NewP2PChannel(sender) in here,
	// where sender is a github.com/luxfi/p2p.Sender the host's own
	// transport setup provides; this binary ships a mock channel that
	// records sends without transmitting them, so a single node is
	// runnable standalone.
	channel := networkmock.NewMockChannel()

	ex := exchange.New(crypto.KindDA, mem, channel, nodeID, sk)

	store, err := openStore(storeKind, pebblePath)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := config.NewBuilder().
		WithCommittee(totalNodes, daCommittee).
		WithGCWindow(gcWindow).
		WithVIDWorkerPoolSize(vidWorkers).
		Build()
	if err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	bus := eventbus.New()
	state := consensusstate.New()
	scheme := vid.NewPlaceholder()

	daTask := da.New(1, ex, state, store, scheme, cfg, m, log, bus)
	senderTask := sender.New(ex, log)

	harness := task.NewHarness(bus, []task.Task{daTask, senderTask}, func(name string, err error) {
		if errs.KindOf(err) == errs.Fatal {
			fmt.Fprintf(os.Stderr, "hotda-node: fatal error in task %s: %v\n", name, err)
			os.Exit(1)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	harness.Run(ctx)
	return nil
}

func openStore(kind, path string) (storage.Store, error) {
	switch kind {
	case "mem":
		return storage.NewMemStore(), nil
	case "pebble":
		return storage.NewPebbleStore(path)
	default:
		return nil, fmt.Errorf("unknown store kind %q (want mem or pebble)", kind)
	}
}
