// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlist_AddListRemove(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddWatch(ctx, "NCT002", "follow readout"))
	require.NoError(t, s.AddWatch(ctx, " NCT001 ", ""))

	entries, err := s.Watchlist(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "NCT002", entries[0].ID)
	assert.Equal(t, "follow readout", entries[0].Note)
	assert.Equal(t, "NCT001", entries[1].ID)
	assert.True(t, entries[0].AddedAt.Before(entries[1].AddedAt))

	ok, err := s.Watching(ctx, "NCT001")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := s.RemoveWatch(ctx, "NCT002")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.RemoveWatch(ctx, "NCT002")
	require.NoError(t, err)
	assert.False(t, removed)

	entries, err = s.Watchlist(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NCT001", entries[0].ID)
}

func TestWatchlist_ReAddUpdatesNote(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddWatch(ctx, "NCT001", "first"))
	before, err := s.Watchlist(ctx)
	require.NoError(t, err)

	require.NoError(t, s.AddWatch(ctx, "NCT001", "second"))
	after, err := s.Watchlist(ctx)
	require.NoError(t, err)

	require.Len(t, after, 1)
	assert.Equal(t, "second", after[0].Note)
	assert.True(t, before[0].AddedAt.Equal(after[0].AddedAt))
}

func TestWatchlist_EmptyID(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.AddWatch(context.Background(), "  ", "x"))
}
