// Package middlewares provides the HTTP middleware ghkeeper installs on its App.
//
// # Request ID
//
// RequestID assigns each request an ID (incoming header or a fresh ULID).
// Pass RequestIDExtractor to the logger so every record carries request_id:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into a PanicError, which the default error handler
// renders as a plain 500. The stack goes to the log, never to the client.
//
// # Timeout
//
// Timeout sets a deadline on the request context so outbound GitHub calls are
// cancelled. Installed as route middleware, a handler error observed after the
// deadline becomes a TimeoutError (503).
//
// # Sessions
//
// RequireSession guards JSON routes with a 401. RequirePageSession guards UI
// pages by redirecting to /{locale}/login.
//
// # Locale and CORS
//
// Locale resolves the UI locale from the i18n_redirected cookie. CORS lets a
// UI on a separate origin call the API with credentials.
//
// # Recommended Order
//
//	internal.WithMiddleware(
//	    middlewares.CORS(origins),
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(),
//	    middlewares.Recover(),
//	    middlewares.Locale(locales, true),
//	)
package middlewares
