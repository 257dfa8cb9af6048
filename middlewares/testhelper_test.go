package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

type testContext struct {
	response *internal.ResponseWriter
	request  *http.Request
	values   map[any]any
	params   map[string]string
	session  *session.Data
	logger   *slog.Logger
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: internal.NewResponseWriter(w),
		request:  r,
		values:   make(map[any]any),
		params:   make(map[string]string),
		logger:   logger.NewNope(),
	}
}

func (c *testContext) Request() *http.Request                   { return c.request }
func (c *testContext) Response() http.ResponseWriter            { return c.response }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context                 { return c.request.Context() }
func (c *testContext) SetContext(ctx context.Context)           { c.request = c.request.WithContext(ctx) }
func (c *testContext) Param(name string) string                 { return c.params[name] }
func (c *testContext) Query(name string) string                 { return c.request.URL.Query().Get(name) }
func (c *testContext) Header(name string) string                { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)             { c.response.Header().Set(name, value) }

func (c *testContext) JSON(code int, v any) error {
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) JSONRaw(code int, raw []byte) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write(raw)
	return err
}

func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) HTML(code int, html []byte) error { return c.JSONRaw(code, html) }
func (c *testContext) NoContent(code int) error         { c.response.WriteHeader(code); return nil }

func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) BindJSON(v any) error              { return json.NewDecoder(c.request.Body).Decode(v) }
func (c *testContext) Written() bool                     { return c.response.Written() }
func (c *testContext) Logger() *slog.Logger              { return c.logger }
func (c *testContext) LogDebug(msg string, attrs ...any) {}
func (c *testContext) LogInfo(msg string, attrs ...any)  {}
func (c *testContext) LogWarn(msg string, attrs ...any)  {}
func (c *testContext) LogError(msg string, attrs ...any) {}

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	// Also store in request context for context extractors
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any {
	return c.values[key]
}

func (c *testContext) Cookie(name string) (string, error) {
	cookie, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

func (c *testContext) SetCookie(name, value string, maxAge int) {
	http.SetCookie(c.response, &http.Cookie{Name: name, Value: value, MaxAge: maxAge})
}

func (c *testContext) DeleteCookie(name string) {
	http.SetCookie(c.response, &http.Cookie{Name: name, MaxAge: -1})
}

func (c *testContext) CookieSigned(name string) (string, error)             { return c.Cookie(name) }
func (c *testContext) SetCookieSigned(name, value string, maxAge int) error { return nil }
func (c *testContext) Session() (*session.Data, error)                      { return c.session, nil }

func (c *testContext) RequireSession() (*session.Data, error) {
	if c.session == nil {
		return nil, internal.ErrUnauthorized("Unauthorized", internal.WithError(session.ErrUnauthorized))
	}
	return c.session, nil
}

func (c *testContext) CreateSession(data session.Data) error { c.session = &data; return nil }
func (c *testContext) DestroySession() error                 { c.session = nil; return nil }

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

var _ internal.Context = (*testContext)(nil)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }
