// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceholderCommitIsDeterministic(t *testing.T) {
	p := NewPlaceholder()
	a, err := p.Commit(context.Background(), []byte("payload"))
	require.NoError(t, err)
	b, err := p.Commit(context.Background(), []byte("payload"))
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := p.Commit(context.Background(), []byte("different"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestPlaceholderDisperseMatchesCommit(t *testing.T) {
	p := NewPlaceholder()
	commit, err := p.Commit(context.Background(), []byte("payload"))
	require.NoError(t, err)

	shares, err := p.Disperse(context.Background(), []byte("payload"), 4)
	require.NoError(t, err)
	require.Len(t, shares, 4)
	for i, s := range shares {
		require.Equal(t, i, s.Index)
		require.Equal(t, commit, s.Commit)
	}
}
