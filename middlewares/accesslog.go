package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/ghkeeper/internal"
)

// AccessLog logs one line per request after the handler returns.
// Query strings are left out: OAuth callbacks carry the code and state there.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status, size := rw.Status(), rw.Size()
			if err != nil && !rw.Written() {
				status, _ = internal.ErrorStatus(err)
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			c.Logger().Log(c, level, "http request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
