package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/middlewares"
	"github.com/dmitrymomot/ghkeeper/pkg/locale"
)

// ShellFile is the SPA entry point looked up in the UI filesystem.
const ShellFile = "index.html"

var fallbackShell = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>ghkeeper</title>
</head>
<body>
<div id="app" data-locale="{{.Locale}}" data-page="{{.Page}}"></div>
</body>
</html>
`))

// Pages serves the localized UI shell and guards the repository page.
type Pages struct {
	locales *locale.Set
	ui      fs.FS
}

// NewPages creates the page handler. ui may be nil, in which case a
// built-in shell is rendered.
func NewPages(locales *locale.Set, ui fs.FS) *Pages {
	return &Pages{locales: locales, ui: ui}
}

// Routes implements internal.Handler.
func (h *Pages) Routes(r internal.Router) {
	r.GET("/", h.root)
	r.GET("/{locale}/login", h.page("login"))
	r.GET("/{locale}/repos", h.page("repos"), middlewares.RequirePageSession(h.locales))
}

func (h *Pages) root(c internal.Context) error {
	return c.Redirect(http.StatusFound, "/"+url.PathEscape(h.locale(c))+"/repos")
}

func (h *Pages) page(name string) internal.HandlerFunc {
	return func(c internal.Context) error {
		code := c.Param("locale")
		if !h.locales.IsValid(code) {
			return c.Redirect(http.StatusFound, "/"+url.PathEscape(h.locales.Default())+"/"+name)
		}

		body, err := h.shell(code, name)
		if err != nil {
			return internal.ErrInternal("", internal.WithError(err))
		}

		c.SetHeader("Cache-Control", "no-store")
		return c.HTML(http.StatusOK, body)
	}
}

func (h *Pages) shell(code, page string) ([]byte, error) {
	if h.ui != nil {
		body, err := fs.ReadFile(h.ui, ShellFile)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := fallbackShell.Execute(&buf, map[string]string{"Locale": code, "Page": page}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Pages) locale(c internal.Context) string {
	if code := middlewares.GetLocale(c); h.locales.IsValid(code) {
		return code
	}
	return h.locales.FromRequest(c.Request())
}
