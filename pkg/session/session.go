package session

import (
	"log/slog"
	"time"
)

// DefaultTTL is the lifetime of every session.
const DefaultTTL = 24 * time.Hour

// Data is the server-side payload of an authenticated session.
// It is written once at login and never mutated.
type Data struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// LogValue keeps the access token out of logs.
func (d Data) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("token", "[REDACTED]"),
		slog.Time("created_at", d.CreatedAt),
	)
}

// ShortID returns a prefix of a session id safe for log lines.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
