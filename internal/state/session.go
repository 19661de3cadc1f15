package state

import (
	"context"
	"sync"

	"stellarburgers/internal/api"
	"stellarburgers/internal/types"
)

// resetAllowedKey is the local-store flag gating the reset-password view
// after a forgot-password request.
const resetAllowedKey = "resetAllowed"

// SessionAPI is the gateway surface the session container relies on.
type SessionAPI interface {
	Login(ctx context.Context, data api.LoginData) (types.User, error)
	Register(ctx context.Context, data api.RegisterData) (types.User, error)
	WhoAmI(ctx context.Context) (types.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (types.User, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password, resetToken string) error
}

// Flags is the durable flag storage the session container relies on.
type Flags interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Session holds the authenticated user and the auth-check tri-state:
// authChecked stays false ("not yet known") until the first auth action
// resolves, then remains true for the rest of the process. It never flips
// back to unknown, only to a checked-and-anonymous state.
type Session struct {
	mu  sync.RWMutex
	api SessionAPI

	user        *types.User
	authChecked bool
	loading     bool
	err         string

	flags Flags
}

// SessionSnapshot is a point-in-time copy of the session state.
type SessionSnapshot struct {
	User        *types.User
	AuthChecked bool
	Loading     bool
	Err         string
}

// NewSession creates an unauthenticated, unchecked session container.
// flags may be nil; the reset-password gate then never opens.
func NewSession(api SessionAPI, flags Flags) *Session {
	return &Session{api: api, flags: flags}
}

func (s *Session) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// settle applies the outcome of an auth action. Any resolution, success
// or failure, marks authentication as checked.
func (s *Session) settle(user *types.User, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.authChecked = true
	if err != nil {
		s.err = err.Error()
		s.user = nil
		return
	}
	s.user = user
}

// Login authenticates with email and password. The gateway persists the
// issued token pair before the user lands here.
func (s *Session) Login(ctx context.Context, email, password string) {
	s.begin()
	user, err := s.api.Login(ctx, api.LoginData{Email: email, Password: password})
	s.settle(&user, err)
}

// Register creates an account; same shape as Login.
func (s *Session) Register(ctx context.Context, name, email, password string) {
	s.begin()
	user, err := s.api.Register(ctx, api.RegisterData{Name: name, Email: email, Password: password})
	s.settle(&user, err)
}

// WhoAmI restores a session from stored credentials at application start.
// The gateway refreshes the access token transparently if it has expired.
func (s *Session) WhoAmI(ctx context.Context) {
	s.begin()
	user, err := s.api.WhoAmI(ctx)
	s.settle(&user, err)
}

// UpdateProfile applies a partial profile mutation; on success the stored
// user is replaced. Does not touch authChecked; the caller is already
// authenticated.
func (s *Session) UpdateProfile(ctx context.Context, update api.ProfileUpdate) {
	s.begin()
	user, err := s.api.UpdateProfile(ctx, update)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return
	}
	s.user = &user
}

// Logout invalidates the refresh token server-side and clears the user.
// The session stays checked: the answer is now "anonymous".
func (s *Session) Logout(ctx context.Context) {
	s.begin()
	err := s.api.Logout(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.authChecked = true
	s.user = nil
	if err != nil {
		s.err = err.Error()
	}
}

// ForgotPassword requests a reset email and opens the reset-password gate.
func (s *Session) ForgotPassword(ctx context.Context, email string) {
	s.begin()
	err := s.api.ForgotPassword(ctx, email)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
	}
	s.mu.Unlock()

	if err == nil && s.flags != nil {
		_ = s.flags.Set(resetAllowedKey, "1")
	}
}

// ResetPassword completes the reset and closes the gate.
func (s *Session) ResetPassword(ctx context.Context, password, resetToken string) {
	s.begin()
	err := s.api.ResetPassword(ctx, password, resetToken)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
	}
	s.mu.Unlock()

	if err == nil && s.flags != nil {
		_ = s.flags.Delete(resetAllowedKey)
	}
}

// ResetAllowed reports whether a forgot-password request opened the
// reset-password view.
func (s *Session) ResetAllowed() bool {
	if s.flags == nil {
		return false
	}
	_, ok, err := s.flags.Get(resetAllowedKey)
	return err == nil && ok
}

// User returns a copy of the authenticated user, nil when anonymous.
func (s *Session) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// AuthChecked reports whether any auth action has resolved yet.
func (s *Session) AuthChecked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authChecked
}

// Loading reports whether an auth action is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last auth error message.
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot returns the full session state as one copy.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := SessionSnapshot{AuthChecked: s.authChecked, Loading: s.loading, Err: s.err}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
