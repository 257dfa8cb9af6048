package middlewares

import (
	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/pkg/locale"
)

type localeKey struct{}

// Locale resolves the UI locale once per request and stores it in the context.
// The i18n_redirected cookie wins when it names a supported locale; otherwise
// the default is used. With negotiate set, Accept-Language is consulted before
// falling back to the default.
func Locale(set *locale.Set, negotiate bool) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			code := set.Default()
			if v, err := c.Cookie(locale.CookieName); err == nil && set.IsValid(v) {
				code = v
			} else if negotiate {
				if h := c.Header("Accept-Language"); h != "" {
					code = set.Negotiate(h)
				}
			}

			c.Set(localeKey{}, code)
			return next(c)
		}
	}
}

// GetLocale returns the locale stored by Locale, or "" if the middleware is not installed.
func GetLocale(c internal.Context) string {
	return internal.ContextValue[string](c, localeKey{})
}
