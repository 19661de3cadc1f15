package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellarburgers/internal/api"
	"stellarburgers/internal/types"
)

type fakeSessionAPI struct {
	login    func(ctx context.Context, data api.LoginData) (types.User, error)
	register func(ctx context.Context, data api.RegisterData) (types.User, error)
	whoAmI   func(ctx context.Context) (types.User, error)
	update   func(ctx context.Context, update api.ProfileUpdate) (types.User, error)
	logout   func(ctx context.Context) error
	forgot   func(ctx context.Context, email string) error
	reset    func(ctx context.Context, password, token string) error
}

func (f *fakeSessionAPI) Login(ctx context.Context, d api.LoginData) (types.User, error) {
	return f.login(ctx, d)
}
func (f *fakeSessionAPI) Register(ctx context.Context, d api.RegisterData) (types.User, error) {
	return f.register(ctx, d)
}
func (f *fakeSessionAPI) WhoAmI(ctx context.Context) (types.User, error) { return f.whoAmI(ctx) }
func (f *fakeSessionAPI) UpdateProfile(ctx context.Context, u api.ProfileUpdate) (types.User, error) {
	return f.update(ctx, u)
}
func (f *fakeSessionAPI) Logout(ctx context.Context) error { return f.logout(ctx) }
func (f *fakeSessionAPI) ForgotPassword(ctx context.Context, email string) error {
	return f.forgot(ctx, email)
}
func (f *fakeSessionAPI) ResetPassword(ctx context.Context, password, token string) error {
	return f.reset(ctx, password, token)
}

type memFlags map[string]string

func (m memFlags) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}
func (m memFlags) Set(key, value string) error { m[key] = value; return nil }
func (m memFlags) Delete(key string) error     { delete(m, key); return nil }

func TestSession_AuthCheckedTransitions(t *testing.T) {
	user := types.User{Name: "Neo", Email: "neo@io.dev"}

	cases := []struct {
		name string
		act  func(s *Session)
		api  *fakeSessionAPI
	}{
		{
			name: "login success",
			act:  func(s *Session) { s.Login(context.Background(), "neo@io.dev", "pw") },
			api: &fakeSessionAPI{login: func(ctx context.Context, d api.LoginData) (types.User, error) {
				return user, nil
			}},
		},
		{
			name: "login failure",
			act:  func(s *Session) { s.Login(context.Background(), "neo@io.dev", "bad") },
			api: &fakeSessionAPI{login: func(ctx context.Context, d api.LoginData) (types.User, error) {
				return types.User{}, errors.New("email or password are incorrect")
			}},
		},
		{
			name: "register success",
			act:  func(s *Session) { s.Register(context.Background(), "Neo", "neo@io.dev", "pw") },
			api: &fakeSessionAPI{register: func(ctx context.Context, d api.RegisterData) (types.User, error) {
				return user, nil
			}},
		},
		{
			name: "whoami failure",
			act:  func(s *Session) { s.WhoAmI(context.Background()) },
			api: &fakeSessionAPI{whoAmI: func(ctx context.Context) (types.User, error) {
				return types.User{}, errors.New("Token is invalid")
			}},
		},
		{
			name: "logout",
			act:  func(s *Session) { s.Logout(context.Background()) },
			api:  &fakeSessionAPI{logout: func(ctx context.Context) error { return nil }},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(tc.api, memFlags{})
			assert.False(t, s.AuthChecked(), "before any auth action the answer is unknown")

			tc.act(s)
			assert.True(t, s.AuthChecked(), "any resolution marks auth as checked")
			assert.False(t, s.Loading())
		})
	}
}

func TestSession_LoginStoresUser(t *testing.T) {
	s := NewSession(&fakeSessionAPI{login: func(ctx context.Context, d api.LoginData) (types.User, error) {
		assert.Equal(t, "neo@io.dev", d.Email)
		return types.User{Name: "Neo", Email: d.Email}, nil
	}}, memFlags{})

	s.Login(context.Background(), "neo@io.dev", "pw")

	require.NotNil(t, s.User())
	assert.Equal(t, "Neo", s.User().Name)
	assert.Empty(t, s.Err())
}

func TestSession_LoginFailureStoresMessage(t *testing.T) {
	s := NewSession(&fakeSessionAPI{login: func(ctx context.Context, d api.LoginData) (types.User, error) {
		return types.User{}, errors.New("email or password are incorrect")
	}}, memFlags{})

	s.Login(context.Background(), "neo@io.dev", "bad")

	assert.Nil(t, s.User())
	assert.Equal(t, "email or password are incorrect", s.Err())
	assert.True(t, s.AuthChecked(), "checked, and the answer is anonymous")
}

func TestSession_UpdateProfileReplacesUser(t *testing.T) {
	s := NewSession(&fakeSessionAPI{
		login: func(ctx context.Context, d api.LoginData) (types.User, error) {
			return types.User{Name: "Neo", Email: "neo@io.dev"}, nil
		},
		update: func(ctx context.Context, u api.ProfileUpdate) (types.User, error) {
			return types.User{Name: u.Name, Email: "neo@io.dev"}, nil
		},
	}, memFlags{})

	s.Login(context.Background(), "neo@io.dev", "pw")
	s.UpdateProfile(context.Background(), api.ProfileUpdate{Name: "Thomas"})

	require.NotNil(t, s.User())
	assert.Equal(t, "Thomas", s.User().Name)
	assert.True(t, s.AuthChecked())
}

func TestSession_UpdateProfileFailureKeepsUser(t *testing.T) {
	s := NewSession(&fakeSessionAPI{
		login: func(ctx context.Context, d api.LoginData) (types.User, error) {
			return types.User{Name: "Neo", Email: "neo@io.dev"}, nil
		},
		update: func(ctx context.Context, u api.ProfileUpdate) (types.User, error) {
			return types.User{}, errors.New("email already exists")
		},
	}, memFlags{})

	s.Login(context.Background(), "neo@io.dev", "pw")
	s.UpdateProfile(context.Background(), api.ProfileUpdate{Email: "taken@io.dev"})

	require.NotNil(t, s.User())
	assert.Equal(t, "Neo", s.User().Name)
	assert.Equal(t, "email already exists", s.Err())
}

func TestSession_LogoutClearsUser(t *testing.T) {
	s := NewSession(&fakeSessionAPI{
		login:  func(ctx context.Context, d api.LoginData) (types.User, error) { return types.User{Name: "N"}, nil },
		logout: func(ctx context.Context) error { return nil },
	}, memFlags{})

	s.Login(context.Background(), "a@b.c", "pw")
	require.NotNil(t, s.User())

	s.Logout(context.Background())
	assert.Nil(t, s.User())
	assert.True(t, s.AuthChecked(), "never back to unknown")
}

func TestSession_ResetPasswordGate(t *testing.T) {
	flags := memFlags{}
	s := NewSession(&fakeSessionAPI{
		forgot: func(ctx context.Context, email string) error { return nil },
		reset:  func(ctx context.Context, password, token string) error { return nil },
	}, flags)

	assert.False(t, s.ResetAllowed())

	s.ForgotPassword(context.Background(), "neo@io.dev")
	assert.True(t, s.ResetAllowed(), "forgot-password opens the reset view gate")

	s.ResetPassword(context.Background(), "new-pw", "emailed-token")
	assert.False(t, s.ResetAllowed(), "a successful reset closes the gate")
}

func TestSession_ForgotPasswordFailureLeavesGateClosed(t *testing.T) {
	s := NewSession(&fakeSessionAPI{
		forgot: func(ctx context.Context, email string) error { return errors.New("unknown email") },
	}, memFlags{})

	s.ForgotPassword(context.Background(), "ghost@io.dev")
	assert.False(t, s.ResetAllowed())
	assert.Equal(t, "unknown email", s.Err())
}
