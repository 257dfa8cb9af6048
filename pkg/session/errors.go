package session

import "errors"

// Session errors.
var (
	// ErrNotConfigured is returned when session functionality is used
	// but no session manager was configured on the app.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session: not found")

	// ErrUnauthorized is returned when a request requires a session but carries none.
	ErrUnauthorized = errors.New("session: unauthorized")

	// ErrStore wraps backend failures other than not-found.
	ErrStore = errors.New("session: store failure")
)
