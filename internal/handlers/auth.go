package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/pkg/locale"
	"github.com/dmitrymomot/ghkeeper/pkg/oauth"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

// StateCookieName holds the OAuth state nonce between authorize and callback.
const StateCookieName = "gh_oauth_state"

// StateTTL bounds how long an authorize request stays redeemable.
const StateTTL = 10 * time.Minute

// Client-facing messages of the OAuth flow.
const (
	msgMissingCode      = "Missing OAuth code"
	msgInvalidState     = "Invalid OAuth state"
	msgExchangeFailed   = "OAuth token exchange failed"
	msgOAuthUnavailable = "GitHub OAuth is not configured"
)

// OAuthProvider is the part of oauth.GitHubProvider the flow needs.
type OAuthProvider interface {
	Validate() error
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

// Auth runs the GitHub login flow and exposes session status and logout.
type Auth struct {
	provider OAuthProvider
	locales  *locale.Set
	now      func() time.Time
}

// NewAuth creates the auth handler.
func NewAuth(provider OAuthProvider, locales *locale.Set) *Auth {
	return &Auth{provider: provider, locales: locales, now: time.Now}
}

// Routes implements internal.Handler.
func (h *Auth) Routes(r internal.Router) {
	r.GET("/auth/github", h.authorize)
	r.GET("/auth/github/callback", h.callback)
	r.POST("/auth/logout", h.logout)
	r.GET("/api/session", h.session)
}

func (h *Auth) authorize(c internal.Context) error {
	if err := h.provider.Validate(); err != nil {
		return internal.ErrInternal(msgOAuthUnavailable, internal.WithError(err))
	}

	state, err := oauth.NewState()
	if err != nil {
		return internal.ErrInternal("", internal.WithError(err))
	}

	c.SetCookie(StateCookieName, state, int(StateTTL/time.Second))
	c.SetHeader("Cache-Control", "no-store")
	return c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// callback validates the nonce before any network call and creates the session.
// The landing locale comes from the i18n_redirected cookie alone; Accept-Language
// is ignored here.
func (h *Auth) callback(c internal.Context) error {
	code := c.Query("code")
	if code == "" {
		return internal.ErrBadRequest(msgMissingCode)
	}

	stored, _ := c.Cookie(StateCookieName)
	c.DeleteCookie(StateCookieName)
	if !oauth.StateMatches(stored, c.Query("state")) {
		c.LogWarn("oauth state mismatch", "cookie_present", stored != "")
		return internal.ErrBadRequest(msgInvalidState)
	}

	if err := h.provider.Validate(); err != nil {
		return internal.ErrInternal(msgOAuthUnavailable, internal.WithError(err))
	}

	token, err := h.provider.Exchange(c, code)
	if err != nil {
		if errors.Is(err, oauth.ErrNoAccessToken) {
			return internal.ErrUnauthorized(msgExchangeFailed, internal.WithError(err))
		}
		return internal.ErrInternal(msgExchangeFailed, internal.WithError(err))
	}

	if err := c.CreateSession(session.Data{Token: token, CreatedAt: h.now().UTC()}); err != nil {
		return err
	}

	c.SetHeader("Cache-Control", "no-store")
	return c.Redirect(http.StatusFound, "/"+url.PathEscape(h.locales.FromRequest(c.Request()))+"/repos")
}

func (h *Auth) logout(c internal.Context) error {
	if err := c.DestroySession(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *Auth) session(c internal.Context) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	c.SetHeader("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, map[string]bool{"authenticated": sess != nil})
}
