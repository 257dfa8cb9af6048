package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/ghkeeper/internal"
)

// DefaultStackSize caps the captured stack trace in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures Recover.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize caps the captured stack trace.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack skips stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover turns a panic below it into a *PanicError, so the client gets
// {"error":"Internal Server Error"} and the panic goes to the log.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if e, ok := v.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(v)
				}

				pe := &PanicError{Value: v, Stack: cfg.stack()}
				c.LogError("panic recovered",
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
					slog.Any("panic", pe),
				)
				err = pe
			}()

			return next(c)
		}
	}
}

func (cfg RecoverConfig) stack() []byte {
	if cfg.DisablePrintStack || cfg.StackSize <= 0 {
		return nil
	}
	buf := make([]byte, cfg.StackSize)
	return buf[:runtime.Stack(buf, false)]
}
