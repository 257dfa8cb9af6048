package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ghkeeper/pkg/cookie"
	"github.com/dmitrymomot/ghkeeper/pkg/github"
	"github.com/dmitrymomot/ghkeeper/pkg/health"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App wires routing, middleware and error rendering.
// App is immutable after New returns.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	cookieManager           *cookie.Manager
	sessionManager          *SessionManager
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an application with the given options.
//
// Example:
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithSession(sessions),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(handlers.NewAuth(provider, locales), handlers.NewAPI(gh)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:        chi.NewRouter(),
		logger:        logger.NewNope(),
		cookieManager: cookie.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.errorHandler == nil {
		a.errorHandler = DefaultErrorHandler
	}
	if a.sessionManager != nil {
		a.sessionManager.SetLogger(a.logger)
	}

	a.setupRoutes()
	return a
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.ShutdownHook(db.Shutdown(pool)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.address == "" {
		cfg.address = addr
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		listener:        cfg.listener,
	})
}

func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.serve(a.notFoundHandler))
	} else {
		a.router.NotFound(a.serve(func(c Context) error {
			return ErrNotFound("")
		}))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.serve(a.methodNotAllowedHandler))
	} else {
		a.router.MethodNotAllowed(a.serve(func(c Context) error {
			return ErrMethodNotAllowed("")
		}))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(LivenessPath, health.LivenessHandler())
		a.router.Get(ReadinessPath, health.ReadinessHandler(a.healthConfig.checks,
			health.WithLogger(a.logger),
		))
	}

	r := &chiRouter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// handleError renders err unless the handler already started a response.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("error after response started", "error", err)
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", "error", herr)
	}
}

// StatusCoder is implemented by errors that carry their own HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// ErrorStatus maps err to a status code and a client-safe message.
// The outermost StatusCoder in the chain wins; upstream GitHub failures keep
// their status but never their body.
func ErrorStatus(err error) (int, string) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		if he, ok := sc.(*HTTPError); ok {
			return he.Code, he.Message
		}
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code, http.StatusText(code)
		}
	}

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status(), "GitHub API request failed"
	}

	switch {
	case errors.Is(err, session.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		return 499, "Client Closed Request"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Request timed out"
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// DefaultErrorHandler renders errors as {"error": message} and logs server-side failures.
func DefaultErrorHandler(c Context, err error) error {
	code, msg := ErrorStatus(err)

	switch {
	case code >= http.StatusInternalServerError:
		c.LogError("request failed", "status", code, "error", err)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		c.LogInfo("request rejected", "status", code, "error", err)
	default:
		c.LogDebug("request error", "status", code, "error", err)
	}

	return c.JSON(code, map[string]string{"error": msg})
}

type healthConfig struct {
	checks health.Checks
}

// Health check paths.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithReadinessCheck adds a named readiness check.
//
// Example:
//
//	internal.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if fn == nil {
			return
		}
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
