package middlewares

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/pkg/locale"
)

// RequireSession rejects requests without a valid session with a 401 JSON error.
// The session is loaded once and cached on the Context for the handler.
func RequireSession() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequirePageSession redirects browsers without a session to /{locale}/login.
// The locale comes from the {locale} route param when supported, then from
// the Locale middleware, then the set default.
func RequirePageSession(set *locale.Set) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			sess, err := c.Session()
			if err != nil {
				return err
			}
			if sess != nil {
				return next(c)
			}

			code := c.Param("locale")
			if !set.IsValid(code) {
				code = GetLocale(c)
			}
			if !set.IsValid(code) {
				code = set.Default()
			}

			c.SetHeader("Cache-Control", "no-store")
			return c.Redirect(http.StatusFound, "/"+url.PathEscape(code)+"/login")
		}
	}
}
