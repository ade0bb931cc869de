// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config implements the enumerated DA/consensus configuration
// (§6) with a fluent Builder, grounded on config/parameters.go and
// config/builder.go's Config/Builder/err-accumulation shape.
package config

import (
	"fmt"
	"time"
)

// Config holds every parameter the DA sub-protocol needs: committee
// sizing, Byzantine thresholds as an explicit numerator/denominator
// pair (so callers never bake in a specific "2/3" literal), the
// garbage-collection window, epoch length, VID parameters, and the
// optimistic-VID feature flag.
type Config struct {
	TotalNodes      int `json:"totalNodes"`
	DACommitteeSize int `json:"daCommitteeSize"`

	SuccessThresholdNum int `json:"successThresholdNum"`
	SuccessThresholdDen int `json:"successThresholdDen"`
	FailureThresholdNum int `json:"failureThresholdNum"`
	FailureThresholdDen int `json:"failureThresholdDen"`

	GCWindowViews uint64 `json:"gcWindowViews"`
	EpochLength   uint64 `json:"epochLength"`

	VIDParams VIDParams `json:"vidParams"`

	// PrimaryNetworkDownOptimisticVID enables the detached VID
	// recomputation task described in SUPPLEMENTED FEATURES item 4.
	PrimaryNetworkDownOptimisticVID bool `json:"primaryNetworkDownOptimisticVid"`

	VIDWorkerPoolSize int `json:"vidWorkerPoolSize"`

	ProposalTimeout time.Duration `json:"proposalTimeout"`
}

// VIDParams configures the dispersal scheme (§3). The scheme itself is
// out of scope (Non-goals); these are the knobs any concrete scheme
// would need.
type VIDParams struct {
	NumStorageNodes         int `json:"numStorageNodes"`
	ReconstructionThreshold int `json:"reconstructionThreshold"`
}

// Builder provides a fluent, validating interface for constructing a
// Config, mirroring config.Builder's accumulate-then-Build pattern:
// errors are recorded as they occur and surfaced once, at Build.
type Builder struct {
	cfg *Config
	err error
}

// NewBuilder starts from conservative defaults.
func NewBuilder() *Builder {
	return &Builder{
		cfg: &Config{
			TotalNodes:          4,
			DACommitteeSize:     4,
			SuccessThresholdNum: 2,
			SuccessThresholdDen: 3,
			FailureThresholdNum: 1,
			FailureThresholdDen: 3,
			GCWindowViews:       100,
			EpochLength:         100,
			VIDParams:           VIDParams{NumStorageNodes: 4, ReconstructionThreshold: 3},
			VIDWorkerPoolSize:   4,
			ProposalTimeout:     5 * time.Second,
		},
	}
}

// WithCommittee sets the total node count and DA committee size.
func (b *Builder) WithCommittee(totalNodes, daCommitteeSize int) *Builder {
	if b.err != nil {
		return b
	}
	if totalNodes < 1 {
		b.err = fmt.Errorf("config: totalNodes must be at least 1, got %d", totalNodes)
		return b
	}
	if daCommitteeSize < 1 || daCommitteeSize > totalNodes {
		b.err = fmt.Errorf("config: daCommitteeSize must be in [1, %d], got %d", totalNodes, daCommitteeSize)
		return b
	}
	b.cfg.TotalNodes = totalNodes
	b.cfg.DACommitteeSize = daCommitteeSize
	return b
}

// WithThresholds sets the success and failure threshold fractions.
func (b *Builder) WithThresholds(successNum, successDen, failureNum, failureDen int) *Builder {
	if b.err != nil {
		return b
	}
	if successDen == 0 || failureDen == 0 {
		b.err = fmt.Errorf("config: threshold denominators must be non-zero")
		return b
	}
	b.cfg.SuccessThresholdNum = successNum
	b.cfg.SuccessThresholdDen = successDen
	b.cfg.FailureThresholdNum = failureNum
	b.cfg.FailureThresholdDen = failureDen
	return b
}

// WithGCWindow sets the view-window retained before garbage collection
// (§5, P6).
func (b *Builder) WithGCWindow(views uint64) *Builder {
	if b.err != nil {
		return b
	}
	if views == 0 {
		b.err = fmt.Errorf("config: gcWindowViews must be positive")
		return b
	}
	b.cfg.GCWindowViews = views
	return b
}

// WithEpochLength sets how many views make up one epoch.
func (b *Builder) WithEpochLength(views uint64) *Builder {
	if b.err != nil {
		return b
	}
	if views == 0 {
		b.err = fmt.Errorf("config: epochLength must be positive")
		return b
	}
	b.cfg.EpochLength = views
	return b
}

// WithVIDParams sets the dispersal parameters.
func (b *Builder) WithVIDParams(numStorageNodes, reconstructionThreshold int) *Builder {
	if b.err != nil {
		return b
	}
	if reconstructionThreshold < 1 || reconstructionThreshold > numStorageNodes {
		b.err = fmt.Errorf("config: reconstructionThreshold must be in [1, %d], got %d", numStorageNodes, reconstructionThreshold)
		return b
	}
	b.cfg.VIDParams = VIDParams{NumStorageNodes: numStorageNodes, ReconstructionThreshold: reconstructionThreshold}
	return b
}

// WithOptimisticVID toggles the detached optimistic-VID task.
func (b *Builder) WithOptimisticVID(enabled bool) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.PrimaryNetworkDownOptimisticVID = enabled
	return b
}

// WithVIDWorkerPoolSize bounds the blocking-worker pool VID commitment
// is offloaded onto (§5, SUPPLEMENTED FEATURES item 2).
func (b *Builder) WithVIDWorkerPoolSize(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = fmt.Errorf("config: vidWorkerPoolSize must be at least 1, got %d", n)
		return b
	}
	b.cfg.VIDWorkerPoolSize = n
	return b
}

// WithProposalTimeout sets how long a node waits for a view's proposal
// before giving up on it.
func (b *Builder) WithProposalTimeout(d time.Duration) *Builder {
	if b.err != nil {
		return b
	}
	if d <= 0 {
		b.err = fmt.Errorf("config: proposalTimeout must be positive")
		return b
	}
	b.cfg.ProposalTimeout = d
	return b
}

// Build validates and returns the final Config.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.cfg.DACommitteeSize > b.cfg.TotalNodes {
		return nil, fmt.Errorf("config: daCommitteeSize (%d) exceeds totalNodes (%d)", b.cfg.DACommitteeSize, b.cfg.TotalNodes)
	}
	out := *b.cfg
	return &out, nil
}
