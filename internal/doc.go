// Package internal is the thin HTTP framework ghkeeper's handlers are written against.
//
// # Core Types
//
//   - App: routing, middleware, error rendering and graceful shutdown
//   - Context: request/response access, cookies, sessions and logging helpers
//   - Router: route declaration with grouping, backed by chi
//   - Handler: a type that declares routes on a Router
//   - HandlerFunc: a route handler that returns an error
//   - Middleware: wraps a HandlerFunc
//   - HTTPError: an error carrying the status and client-safe message
//   - SessionManager: binds server-side sessions to a signed cookie
//
// # Context as context.Context
//
// Context embeds context.Context, so handlers pass it straight to outbound calls.
// A client disconnect cancels in-flight GitHub requests:
//
//	func (h *API) listRepos(c internal.Context) error {
//	    sess, err := c.RequireSession()
//	    if err != nil {
//	        return err
//	    }
//	    raw, err := h.gh.ListRepos(c, sess.Token)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSONRaw(http.StatusOK, raw)
//	}
//
// # Errors
//
// Handlers return errors; the App renders them once through its ErrorHandler.
// DefaultErrorHandler writes {"error": message} with the status from ErrorStatus:
// HTTPError keeps its own code, github.APIError relays the upstream status with a
// generic message, session.ErrUnauthorized becomes 401, and everything else is 500.
// Nothing is rendered if the handler already started a response.
//
// # Sessions
//
// Sessions are opt-in via WithSession. The cookie carries only the signed
// session id; the access token stays in the session.Store.
//
//	sm, err := internal.NewSessionManager(store, cookies)
//	app := internal.New(internal.WithSession(sm), internal.WithHandlers(auth, api))
//
// # Lifecycle
//
// Run listens on the address, runs startup hooks first, and on SIGINT/SIGTERM
// drains connections before running shutdown hooks within ShutdownTimeout.
package internal
