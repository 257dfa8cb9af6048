package logger

import (
	"io"
	"log/slog"
)

// NewNope returns a logger that discards everything. Used as the default in
// constructors and in tests.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
