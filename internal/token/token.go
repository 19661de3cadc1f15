// Package token manages the backend credential pair.
//
// The access token is short-lived and kept in memory only, the way the
// browser build keeps it in a session cookie. The refresh token is durable:
// it is persisted to the local store under the key "refreshToken" so a
// session can be restored across process restarts.
package token

import (
	"fmt"
	"sync"
)

// RefreshKey is the local-store key holding the refresh token.
const RefreshKey = "refreshToken"

// Persistence is the durable backing for the refresh token.
type Persistence interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store holds the current token pair.
type Store struct {
	mu      sync.Mutex
	access  string
	refresh string
	local   Persistence
}

// NewStore creates a token store, loading any persisted refresh token.
func NewStore(local Persistence) (*Store, error) {
	s := &Store{local: local}
	if local != nil {
		v, ok, err := local.Get(RefreshKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load refresh token: %w", err)
		}
		if ok {
			s.refresh = v
		}
	}
	return s, nil
}

// Access returns the current access token, empty if none.
func (s *Store) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

// Refresh returns the current refresh token, empty if none.
func (s *Store) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// SetPair stores a rotated token pair, persisting the refresh token.
func (s *Store) SetPair(access, refresh string) error {
	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.mu.Unlock()

	if s.local != nil {
		if err := s.local.Set(RefreshKey, refresh); err != nil {
			return fmt.Errorf("failed to persist refresh token: %w", err)
		}
	}
	return nil
}

// Clear destroys both tokens, removing the persisted refresh token.
// Used on logout and on auth failure.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.mu.Unlock()

	if s.local != nil {
		if err := s.local.Delete(RefreshKey); err != nil {
			return fmt.Errorf("failed to clear refresh token: %w", err)
		}
	}
	return nil
}
