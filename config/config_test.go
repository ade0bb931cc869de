// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderDefaultsBuild(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.TotalNodes)
	require.Equal(t, 4, cfg.DACommitteeSize)
}

func TestBuilderRejectsOversizedCommittee(t *testing.T) {
	_, err := NewBuilder().WithCommittee(4, 5).Build()
	require.Error(t, err)
}

func TestBuilderRejectsZeroGCWindow(t *testing.T) {
	_, err := NewBuilder().WithGCWindow(0).Build()
	require.Error(t, err)
}

func TestBuilderChaining(t *testing.T) {
	cfg, err := NewBuilder().
		WithCommittee(10, 7).
		WithThresholds(2, 3, 1, 3).
		WithGCWindow(50).
		WithEpochLength(200).
		WithVIDParams(7, 5).
		WithOptimisticVID(true).
		Build()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.TotalNodes)
	require.Equal(t, 7, cfg.DACommitteeSize)
	require.Equal(t, uint64(50), cfg.GCWindowViews)
	require.True(t, cfg.PrimaryNetworkDownOptimisticVID)
}

func TestBuilderStopsAtFirstError(t *testing.T) {
	_, err := NewBuilder().WithCommittee(-1, 1).WithGCWindow(10).Build()
	require.Error(t, err)
}
