package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SetGetDelete(t *testing.T) {
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("refreshToken")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("refreshToken", "rt-1"))
	v, ok, err := s.Get("refreshToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rt-1", v)

	// Overwrite
	require.NoError(t, s.Set("refreshToken", "rt-2"))
	v, _, err = s.Get("refreshToken")
	require.NoError(t, err)
	assert.Equal(t, "rt-2", v)

	require.NoError(t, s.Delete("refreshToken"))
	_, ok, err = s.Get("refreshToken")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is fine
	require.NoError(t, s.Delete("refreshToken"))
}

func TestLocalStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")

	s, err := NewLocalStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("refreshToken", "survives"))
	require.NoError(t, s.Close())

	s2, err := NewLocalStore(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get("refreshToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "survives", v)
}
