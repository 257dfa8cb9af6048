package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/middlewares"
	"github.com/dmitrymomot/ghkeeper/pkg/locale"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

func TestRequireSession(t *testing.T) {
	t.Parallel()

	next := func(c internal.Context) error { return c.NoContent(http.StatusNoContent) }

	t.Run("rejects anonymous", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := middlewares.RequireSession()(next)(newTestContext(rec, httptest.NewRequest(http.MethodGet, "/api/repos", nil)))

		code, msg := internal.ErrorStatus(err)
		require.Equal(t, http.StatusUnauthorized, code)
		require.Equal(t, "Unauthorized", msg)
		require.False(t, rec.Result().Header.Get("Content-Type") != "")
	})

	t.Run("passes authenticated", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/api/repos", nil))
		ctx.session = &session.Data{Token: "t"}

		require.NoError(t, middlewares.RequireSession()(next)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequirePageSession(t *testing.T) {
	t.Parallel()

	set := newLocales(t)
	next := func(c internal.Context) error { return c.String(http.StatusOK, "page") }

	tests := []struct {
		name   string
		param  string
		cookie string
		want   string
	}{
		{name: "route locale", param: "ja", want: "/ja/login"},
		{name: "unsupported route locale falls back to cookie", param: "xx", cookie: "ja", want: "/ja/login"},
		{name: "default", param: "xx", want: "/en/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/"+tt.param+"/repos", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: locale.CookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			ctx := newTestContext(rec, req)
			ctx.params["locale"] = tt.param

			handler := middlewares.Locale(set, false)(middlewares.RequirePageSession(set)(next))
			require.NoError(t, handler(ctx))
			require.Equal(t, http.StatusFound, rec.Code)
			require.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}

	t.Run("authenticated sees the page", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/en/repos", nil))
		ctx.session = &session.Data{Token: "t"}

		require.NoError(t, middlewares.RequirePageSession(set)(next)(ctx))
		require.Equal(t, "page", rec.Body.String())
	})
}
