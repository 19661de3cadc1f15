// Package api is the gateway to the Stellar Burgers REST backend.
//
// All responses carry a JSON body shaped {"success": bool, ...}; a non-2xx
// status or success=false is surfaced as *APIError. Authenticated calls
// attach the stored access token and transparently refresh it once when the
// backend reports expiry, retrying the original request a single time.
// Concurrent callers share one in-flight refresh exchange.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"stellarburgers/internal/token"
)

// refreshMargin triggers a proactive refresh when the access token's exp
// claim is this close to now.
const refreshMargin = 30 * time.Second

// Client issues HTTP calls to the backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *token.Store
	log     *zap.Logger

	// refreshing collapses concurrent refresh exchanges into one.
	refreshing singleflight.Group
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, tokens *token.Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// envelope is the common success/message prefix of every backend response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// call performs one HTTP exchange and decodes the response into out.
// out may be nil when only the success flag matters.
func (c *Client) call(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	if authed {
		req.Header.Set("Authorization", c.tokens.Access())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(data) > 0 {
		// A body that is not JSON at all is reported via the status line.
		_ = json.Unmarshal(data, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &APIError{Message: msg, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// callAuthed performs an authenticated exchange with the refresh-and-retry
// contract: at most one refresh, then one retry of the original request.
// A refresh failure is what the caller observes.
func (c *Client) callAuthed(ctx context.Context, method, path string, body any, out any) error {
	if c.accessNearExpiry() {
		if err := c.refresh(ctx); err != nil {
			// Proactive refresh is best-effort; the reactive path below
			// still governs the call's outcome.
			c.log.Debug("proactive token refresh failed", zap.Error(err))
		}
	}

	err := c.call(ctx, method, path, body, true, out)
	if !IsTokenExpired(err) {
		return err
	}

	c.log.Debug("access token expired, refreshing", zap.String("path", path))
	if err := c.refresh(ctx); err != nil {
		return err
	}
	return c.call(ctx, method, path, body, true, out)
}

// refreshResponse is the rotated pair returned by POST /auth/token.
type refreshResponse struct {
	envelope
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refresh exchanges the stored refresh token for a new pair and persists
// it. Concurrent callers wait on a single exchange.
func (c *Client) refresh(ctx context.Context) error {
	_, err, _ := c.refreshing.Do("refresh", func() (any, error) {
		rt := c.tokens.Refresh()
		if rt == "" {
			return nil, &APIError{Message: "no refresh token available", Status: http.StatusUnauthorized}
		}

		var resp refreshResponse
		if err := c.call(ctx, http.MethodPost, "/auth/token", map[string]string{"token": rt}, false, &resp); err != nil {
			return nil, fmt.Errorf("token refresh failed: %w", err)
		}
		if err := c.tokens.SetPair(resp.AccessToken, resp.RefreshToken); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// accessNearExpiry inspects the access token's exp claim without verifying
// the signature. Tokens that cannot be parsed fall back to the reactive
// refresh path.
func (c *Client) accessNearExpiry() bool {
	raw := strings.TrimPrefix(c.tokens.Access(), "Bearer ")
	if raw == "" {
		// Fresh process: the access token lives in memory only, so a
		// restored session has a refresh token and no access token.
		return c.tokens.Refresh() != ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < refreshMargin
}
