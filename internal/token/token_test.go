package token

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellarburgers/internal/store"
)

func newLocal(t *testing.T) *store.LocalStore {
	t.Helper()
	s, err := store.NewLocalStore(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PairLifecycle(t *testing.T) {
	s, err := NewStore(newLocal(t))
	require.NoError(t, err)

	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())

	require.NoError(t, s.SetPair("Bearer at-1", "rt-1"))
	assert.Equal(t, "Bearer at-1", s.Access())
	assert.Equal(t, "rt-1", s.Refresh())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())
}

func TestStore_RefreshSurvivesRestart(t *testing.T) {
	local := newLocal(t)

	s, err := NewStore(local)
	require.NoError(t, err)
	require.NoError(t, s.SetPair("Bearer at-1", "rt-1"))

	// A new store over the same persistence sees the refresh token but
	// not the in-memory access token.
	s2, err := NewStore(local)
	require.NoError(t, err)
	assert.Equal(t, "rt-1", s2.Refresh())
	assert.Empty(t, s2.Access())
}

func TestStore_NilPersistence(t *testing.T) {
	s, err := NewStore(nil)
	require.NoError(t, err)
	require.NoError(t, s.SetPair("a", "r"))
	require.NoError(t, s.Clear())
}
