package api

import (
	"context"
	"net/http"

	"stellarburgers/internal/types"
)

// RegisterData is the payload for account creation.
type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is the payload for authentication.
type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries the fields of a partial profile mutation; empty
// fields are omitted from the request.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type authResponse struct {
	envelope
	User         types.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// Register creates an account. The returned token pair is persisted before
// the user is handed back.
func (c *Client) Register(ctx context.Context, data RegisterData) (types.User, error) {
	var resp authResponse
	if err := c.call(ctx, http.MethodPost, "/auth/register", data, false, &resp); err != nil {
		return types.User{}, err
	}
	if err := c.tokens.SetPair(resp.AccessToken, resp.RefreshToken); err != nil {
		return types.User{}, err
	}
	return resp.User, nil
}

// Login authenticates and persists the issued token pair.
func (c *Client) Login(ctx context.Context, data LoginData) (types.User, error) {
	var resp authResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", data, false, &resp); err != nil {
		return types.User{}, err
	}
	if err := c.tokens.SetPair(resp.AccessToken, resp.RefreshToken); err != nil {
		return types.User{}, err
	}
	return resp.User, nil
}

// Logout invalidates the refresh token server-side and destroys the local
// pair regardless of the server's answer.
func (c *Client) Logout(ctx context.Context) error {
	rt := c.tokens.Refresh()
	err := c.call(ctx, http.MethodPost, "/auth/logout", map[string]string{"token": rt}, false, nil)
	if cerr := c.tokens.Clear(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

type userResponse struct {
	envelope
	User types.User `json:"user"`
}

// WhoAmI resolves the current user from the stored credentials, refreshing
// the access token if it has expired.
func (c *Client) WhoAmI(ctx context.Context) (types.User, error) {
	var resp userResponse
	if err := c.callAuthed(ctx, http.MethodGet, "/auth/user", nil, &resp); err != nil {
		return types.User{}, err
	}
	return resp.User, nil
}

// UpdateProfile applies a partial profile mutation and returns the updated
// user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (types.User, error) {
	var resp userResponse
	if err := c.callAuthed(ctx, http.MethodPatch, "/auth/user", update, &resp); err != nil {
		return types.User{}, err
	}
	return resp.User, nil
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.call(ctx, http.MethodPost, "/password-reset", map[string]string{"email": email}, false, nil)
}

// ResetPassword completes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, password, resetToken string) error {
	body := map[string]string{"password": password, "token": resetToken}
	return c.call(ctx, http.MethodPost, "/password-reset/reset", body, false, nil)
}
