package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ghkeeper/pkg/cookie"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

// MaxJSONBodySize caps request bodies read by BindJSON.
const MaxJSONBodySize = 1 << 20

// ErrInvalidJSON is returned by BindJSON for malformed bodies.
var ErrInvalidJSON = errors.New("invalid JSON body")

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context,
// so it can be passed directly to outbound calls.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// SetContext replaces the request context (deadlines, cancellation).
	SetContext(ctx context.Context)

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as JSON with the given status code.
	JSON(code int, v any) error

	// JSONRaw writes an already encoded JSON document.
	JSONRaw(code int, raw []byte) error

	// String writes a plain text response.
	String(code int, s string) error

	// HTML writes an HTML document.
	HTML(code int, html []byte) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to url with the given status code.
	Redirect(code int, url string) error

	// Error builds an HTTPError to return from the handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// BindJSON decodes the request body into v.
	// An empty body leaves v untouched. Malformed JSON yields a 400 HTTPError.
	BindJSON(v any) error

	// Written reports whether a response has already been started.
	Written() bool

	// Logger returns the app logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context.
	Get(key any) any

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// SetCookie sets a plain cookie.
	SetCookie(name, value string, maxAge int)

	// DeleteCookie expires a cookie.
	DeleteCookie(name string)

	// CookieSigned returns the verified value of a signed cookie.
	CookieSigned(name string) (string, error)

	// SetCookieSigned sets a signed cookie.
	SetCookieSigned(name, value string, maxAge int) error

	// Session returns the current session, or nil when the request has none.
	// Returns session.ErrNotConfigured if no session manager is set.
	Session() (*session.Data, error)

	// RequireSession is Session that fails with an HTTP 401 when there is no session.
	RequireSession() (*session.Data, error)

	// CreateSession stores data under a new session id and sets the cookie.
	CreateSession(data session.Data) error

	// DestroySession deletes the session, if any, and expires the cookie.
	DestroySession() error

	// ResponseWriter returns the wrapped writer.
	ResponseWriter() *ResponseWriter
}

type requestContext struct {
	request        *http.Request
	response       *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
	sessionManager *SessionManager

	session       *session.Data
	sessionLoaded bool
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	return &requestContext{
		request:        r,
		response:       rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
		sessionManager: app.sessionManager,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) JSONRaw(code int, raw []byte) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write(raw)
	return err
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) HTML(code int, html []byte) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write(html)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) BindJSON(v any) error {
	if c.request.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(c.request.Body, MaxJSONBodySize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrBadRequest(ErrInvalidJSON.Error(), WithError(errors.Join(ErrInvalidJSON, err)))
	}
	return nil
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.SetContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.cookieManager.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookieManager.SetSigned(c.response, name, value, maxAge)
}

// Session loads the session once per request.
func (c *requestContext) Session() (*session.Data, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}
	if c.sessionLoaded {
		return c.session, nil
	}

	data, err := c.sessionManager.Get(c.Context(), c.request)
	if err != nil {
		return nil, err
	}
	c.session = data
	c.sessionLoaded = true
	return data, nil
}

func (c *requestContext) RequireSession() (*session.Data, error) {
	data, err := c.Session()
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrUnauthorized("Unauthorized", WithError(session.ErrUnauthorized))
	}
	return data, nil
}

func (c *requestContext) CreateSession(data session.Data) error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	if _, err := c.sessionManager.Create(c.Context(), c.response, data); err != nil {
		return err
	}
	c.session = &data
	c.sessionLoaded = true
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	if err := c.sessionManager.Destroy(c.Context(), c.response, c.request); err != nil {
		return err
	}
	c.session = nil
	c.sessionLoaded = true
	return nil
}
