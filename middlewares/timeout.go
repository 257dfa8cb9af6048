package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/ghkeeper/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context.
// Outbound calls made with the context are cancelled at the deadline; a
// handler error observed after it becomes a TimeoutError. The handler runs on
// the request goroutine, so nothing keeps writing after the middleware returns.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			parent := c.Context()
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()

			c.SetContext(ctx)
			err := next(c)
			c.SetContext(parent)

			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Err: err, Duration: timeout}
			}
			return err
		}
	}
}
