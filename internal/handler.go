package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Auth struct {
//	    provider *oauth.GitHubProvider
//	}
//
//	func (h *Auth) Routes(r internal.Router) {
//	    r.GET("/auth/github", h.authorize)
//	    r.GET("/auth/github/callback", h.callback)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// A returned error is rendered by the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
//
// Example:
//
//	func RequireSession(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c internal.Context) error {
//	        if _, err := c.RequireSession(); err != nil {
//	            return err
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
