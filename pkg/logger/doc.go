// Package logger builds the service's slog loggers.
//
// Loggers write JSON (or text, for local development) to stdout, inject
// request-scoped attributes through [ContextExtractor] functions, and can
// mirror warnings and errors to Sentry:
//
//	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "session created", slog.String("session", session.ShortID(id)))
//
// Attributes named token, access_token, authorization, client_secret,
// session_secret or cookie are replaced with "[REDACTED]" before output.
package logger
