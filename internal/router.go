package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is what a Handler sees when declaring routes. Patterns use chi
// syntax, so "/api/repos/{owner}/{repo}" exposes Param("owner") and Param("repo").
//
// Middleware passed to a method call wraps that route only and runs after the
// global chain, first listed outermost. Errors returned anywhere inside the
// route chain reach the app's ErrorHandler once.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	PUT(path string, h HandlerFunc, mw ...Middleware)
	PATCH(path string, h HandlerFunc, mw ...Middleware)
	DELETE(path string, h HandlerFunc, mw ...Middleware)
	HEAD(path string, h HandlerFunc, mw ...Middleware)
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Group scopes Use calls to the routes declared inside fn.
	Group(fn func(r Router))

	// Route declares routes under a shared pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use adds middleware for every route declared on this router afterwards.
	// Unlike route middleware it also runs for unmatched paths.
	Use(mw ...Middleware)

	// Mount attaches a plain http.Handler.
	Mount(pattern string, h http.Handler)
}

type chiRouter struct {
	mux chi.Router
	app *App
}

func (r *chiRouter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodGet, path, h, mw)
}

func (r *chiRouter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPost, path, h, mw)
}

func (r *chiRouter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPut, path, h, mw)
}

func (r *chiRouter) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPatch, path, h, mw)
}

func (r *chiRouter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodDelete, path, h, mw)
}

func (r *chiRouter) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodHead, path, h, mw)
}

func (r *chiRouter) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodOptions, path, h, mw)
}

func (r *chiRouter) Group(fn func(Router)) {
	r.mux.Group(func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app})
	})
}

func (r *chiRouter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app})
	})
}

func (r *chiRouter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(r.app.adaptMiddleware(m))
	}
}

func (r *chiRouter) Mount(pattern string, h http.Handler) {
	r.mux.Mount(pattern, h)
}

func (r *chiRouter) handle(method, path string, h HandlerFunc, mw []Middleware) {
	for _, m := range slices.Backward(mw) {
		h = m(h)
	}
	r.mux.Method(method, path, r.app.serve(h))
}

// serve turns a route chain into an http.HandlerFunc.
func (a *App) serve(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		c := newContext(w, req, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// adaptMiddleware runs mw as chi middleware. The request passed on carries
// any context values mw stored, and an error mw returns is rendered in place.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chain := mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		})
		return a.serve(chain)
	}
}
