package github

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingToken is returned when a call is made without an access token.
	ErrMissingToken = errors.New("github: missing access token")

	// ErrDecodeFailed is returned when a typed response cannot be decoded.
	ErrDecodeFailed = errors.New("github: failed to decode response")
)

// APIError reports a failed GitHub API call.
// StatusCode is the upstream status, or 500 when no response was received.
// The upstream body is never retained.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("github: %s %s failed: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("github: %s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status to relay to the caller.
func (e *APIError) Status() int {
	if e.StatusCode < 100 || e.StatusCode > 599 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}
