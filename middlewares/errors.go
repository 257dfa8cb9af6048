package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// PanicError is what Recover returns in place of a panic. It renders as a
// plain 500; the value and stack are for logs only.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) StatusCode() int {
	return http.StatusInternalServerError
}

func (e *PanicError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("value", fmt.Sprint(e.Value))}
	if len(e.Stack) > 0 {
		attrs = append(attrs, slog.String("stack", string(e.Stack)))
	}
	return slog.GroupValue(attrs...)
}

// TimeoutError is what Timeout returns when the route failed because its
// deadline passed. It renders as 503 and unwraps to the handler's error.
type TimeoutError struct {
	Err      error
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func (e *TimeoutError) StatusCode() int {
	return http.StatusServiceUnavailable
}
