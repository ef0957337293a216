package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), filepath.Join(t.TempDir(), "pokedex.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestGetMissing(t *testing.T) {
	s := newStorage(t)

	value, ok, err := s.Get(context.Background(), "cli", "pokemonFavorites")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	require.NoError(t, s.Set(ctx, "cli", "pokemonFavorites", "[1]"))
	require.NoError(t, s.Set(ctx, "cli", "pokemonFavorites", "[1,25]"))

	value, ok, err := s.Get(ctx, "cli", "pokemonFavorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1,25]", value)
}

func TestScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	require.NoError(t, s.Set(ctx, "alice", "pokemonFavorites", "[4]"))
	require.NoError(t, s.Set(ctx, "bob", "pokemonFavorites", "[7]"))

	value, _, err := s.Get(ctx, "alice", "pokemonFavorites")
	require.NoError(t, err)
	assert.Equal(t, "[4]", value)

	scopes, err := s.Scopes(ctx, "pokemonFavorites")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, scopes)

	require.NoError(t, s.Delete(ctx, "alice", "pokemonFavorites"))
	_, ok, err := s.Get(ctx, "alice", "pokemonFavorites")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReopenKeepsValues(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pokedex.db")

	s, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "cli", "k", "v"))
	require.NoError(t, s.Close())

	s, err = New(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	value, ok, err := s.Get(ctx, "cli", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
