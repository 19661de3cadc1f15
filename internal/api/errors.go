package api

import (
	"errors"
	"strings"
)

// tokenExpiredMessage is the exact backend message signalling that the
// access token must be refreshed.
const tokenExpiredMessage = "jwt expired"

// APIError is a failure reported by the backend: a non-2xx status or a
// response body with success=false.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// IsTokenExpired reports whether err is the backend's expired-token error.
func IsTokenExpired(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(apiErr.Message, tokenExpiredMessage)
}
