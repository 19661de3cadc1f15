package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellarburgers/internal/token"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *token.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens, err := token.NewStore(nil)
	require.NoError(t, err)
	return NewClient(srv.URL, 5*time.Second, tokens, nil), tokens
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_Ingredients(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ingredients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"_id": "bun-1", "name": "Space bun", "type": "bun", "price": 5},
				{"_id": "main-1", "name": "Meteor cutlet", "type": "main", "price": 3},
			},
		})
	})

	c, _ := newTestClient(t, mux)
	items, err := c.Ingredients(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "bun-1", items[0].ID)
	assert.True(t, items[0].IsBun())
	assert.Equal(t, 3, items[1].Price)
}

func TestClient_APIErrorOnFailureBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "email or password are incorrect",
		})
	})

	c, _ := newTestClient(t, mux)
	_, err := c.Login(context.Background(), LoginData{Email: "a@b.c", Password: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "email or password are incorrect", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_SuccessFalseDespite200(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ingredients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "catalog offline"})
	})

	c, _ := newTestClient(t, mux)
	_, err := c.Ingredients(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "catalog offline", apiErr.Message)
}

func TestClient_SubmitOrderPayload(t *testing.T) {
	var got struct {
		Ingredients []string `json:"ingredients"`
	}
	var gotAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"name":    "Space burger",
			"order":   map[string]any{"_id": "o1", "number": 4242, "status": "created"},
		})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("Bearer at", "rt"))

	order, err := c.SubmitOrder(context.Background(), []string{"B", "F1", "F2", "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "F1", "F2", "B"}, got.Ingredients)
	assert.Equal(t, "Bearer at", gotAuth)
	assert.Equal(t, 4242, order.Number)
}

func TestClient_RefreshAndRetryOnce(t *testing.T) {
	var userCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		userCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "jwt expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]string{"name": "Neo", "email": "neo@io.dev"},
		})
	})
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rt-old", body["token"])
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"accessToken":  "Bearer fresh",
			"refreshToken": "rt-new",
		})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("Bearer stale", "rt-old"))

	user, err := c.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Neo", user.Name)

	assert.Equal(t, int32(2), userCalls.Load(), "original call plus exactly one retry")
	assert.Equal(t, int32(1), refreshCalls.Load())

	// Rotated pair is persisted.
	assert.Equal(t, "Bearer fresh", tokens.Access())
	assert.Equal(t, "rt-new", tokens.Refresh())
}

func TestClient_RefreshFailurePropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "jwt expired"})
	})
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "Token is invalid"})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("Bearer stale", "rt-dead"))

	_, err := c.WhoAmI(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Token is invalid", apiErr.Message)
}

func TestClient_NoRetryLoopBeyondOneRefresh(t *testing.T) {
	var userCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		userCalls.Add(1)
		// Server keeps insisting the token is expired even after refresh.
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "jwt expired"})
	})
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "accessToken": "Bearer fresh", "refreshToken": "rt-new",
		})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("Bearer stale", "rt-old"))

	_, err := c.WhoAmI(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), userCalls.Load(), "exactly one retry, no loop")
}

func TestClient_ConcurrentRefreshIsShared(t *testing.T) {
	var refreshCalls atomic.Int32

	// Hold the first wave of /auth/user responses until both requests have
	// arrived, so both callers observe expiry together.
	var barrier sync.WaitGroup
	barrier.Add(2)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			barrier.Done()
			barrier.Wait()
			writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "jwt expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]string{"name": "Trin", "email": "trin@io.dev"},
		})
	})
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "accessToken": "Bearer fresh", "refreshToken": "rt-new",
		})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("Bearer stale", "rt-old"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.WhoAmI(context.Background())
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), refreshCalls.Load(), "concurrent expiries share one refresh exchange")
}

func TestClient_ProactiveRefreshOnNearExpiry(t *testing.T) {
	var refreshCalls atomic.Int32

	// A real (self-signed) JWT whose exp is already in the past.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-key"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]string{"name": "Morpheus", "email": "m@io.dev"},
		})
	})
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "accessToken": "Bearer fresh", "refreshToken": "rt-new",
		})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("Bearer "+signed, "rt-old"))

	_, err = c.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), refreshCalls.Load(), "expiry is detected before the call goes out")
}

func TestClient_RestoredSessionRefreshesBeforeFirstCall(t *testing.T) {
	// A fresh process has a persisted refresh token but no access token.
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]string{"name": "Trinity", "email": "t@io.dev"},
		})
	})
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "accessToken": "Bearer fresh", "refreshToken": "rt-new",
		})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("", "rt-persisted"))

	user, err := c.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Trinity", user.Name)
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestClient_OrderByNumberNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/99999", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": []any{}})
	})

	c, _ := newTestClient(t, mux)
	_, err := c.OrderByNumber(context.Background(), 99999)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_LogoutClearsTokensEvenOnSuccess(t *testing.T) {
	var gotToken string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotToken = body["token"]
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	c, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.SetPair("Bearer at", "rt-1"))

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, "rt-1", gotToken, "logout body carries the refresh token")
	assert.Empty(t, tokens.Access())
	assert.Empty(t, tokens.Refresh())
}
