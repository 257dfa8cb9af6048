package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghkeeper/pkg/cookie"
)

func TestPlainCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	t.Run("get non-existent cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(r, "missing")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("set and get cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", 3600)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "value", cookies[0].Value)
		assert.Equal(t, 3600, cookies[0].MaxAge)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])
		val, err := m.Get(r, "name")
		require.NoError(t, err)
		assert.Equal(t, "value", val)
	})

	t.Run("delete cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Delete(w, "name")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	})
}

func TestSignedCookies(t *testing.T) {
	t.Parallel()

	t.Run("no signer returns error", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()

		err := m.SetSigned(httptest.NewRecorder(), "s", "v", 60)
		require.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "s")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("set and get signed cookie", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSigner(newSigner(t, testSecret)))

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "s", "session-id", 60))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.NotEqual(t, "session-id", cookies[0].Value)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])
		val, err := m.GetSigned(r, "s")
		require.NoError(t, err)
		assert.Equal(t, "session-id", val)
	})

	t.Run("tampered cookie fails", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSigner(newSigner(t, testSecret)))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "s", Value: "session-id.deadbeef"})
		_, err := m.GetSigned(r, "s")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("missing cookie returns not found", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSigner(newSigner(t, testSecret)))

		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "s")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})
}

func TestCookieAttributes(t *testing.T) {
	t.Parallel()

	m := cookie.New(
		cookie.WithDomain("example.com"),
		cookie.WithPath("/app"),
		cookie.WithSecure(true),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)

	w := httptest.NewRecorder()
	m.Set(w, "test", "value", 3600)

	c := w.Result().Cookies()[0]
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, "/app", c.Path)
	assert.True(t, c.Secure)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestDefaultAttributes(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	cookie.New().Set(w, "test", "value", 3600)

	c := w.Result().Cookies()[0]
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}
