package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/pkg/id"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
)

type requestIDKey struct{}

// MaxRequestIDLength bounds IDs accepted from clients.
const MaxRequestIDLength = 128

// DefaultRequestIDHeaders are consulted in order for an incoming ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestIDConfig configures RequestID.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders replaces DefaultRequestIDHeaders.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Generator = gen
	}
}

// WithRequestIDResponseHeader sets the header the ID is echoed in.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.ResponseHeader = header
	}
}

// RequestID tags each request with an ID that shows up in the response
// header and, through RequestIDExtractor, on every log line of the request.
// An incoming ID is reused only if it is printable ASCII without spaces and
// at most MaxRequestIDLength bytes; otherwise a fresh ULID is issued.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := RequestIDConfig{
		Generator:      id.NewULID,
		ResponseHeader: "X-Request-ID",
		Headers:        DefaultRequestIDHeaders,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID := cfg.incoming(c)
			if reqID == "" {
				reqID = cfg.Generator()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.ResponseHeader, reqID)
			return next(c)
		}
	}
}

func (cfg RequestIDConfig) incoming(c internal.Context) string {
	for _, h := range cfg.Headers {
		if v := c.Header(h); validRequestID(v) {
			return v
		}
	}
	return ""
}

func validRequestID(v string) bool {
	if v == "" || len(v) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] <= ' ' || v[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID assigned by RequestID, or "".
func GetRequestID(c internal.Context) string {
	return internal.ContextValue[string](c, requestIDKey{})
}

// RequestIDExtractor adds "request_id" to log records; pass it to logger.New.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		v, _ := ctx.Value(requestIDKey{}).(string)
		return slog.String("request_id", v), v != ""
	}
}
