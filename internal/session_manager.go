package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/ghkeeper/pkg/cookie"
	"github.com/dmitrymomot/ghkeeper/pkg/id"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

// DefaultSessionCookieName is the cookie carrying the signed session id.
const DefaultSessionCookieName = "gh_session"

// SessionManager binds server-side sessions to a signed cookie.
// The cookie holds only the signed session id, never session data.
type SessionManager struct {
	store      session.Store
	cookies    *cookie.Manager
	logger     *slog.Logger
	newID      func() string
	cookieName string
	ttl        time.Duration
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a SessionManager.
// cookies must carry a signer; sessions are never bound to unsigned cookies.
func NewSessionManager(store session.Store, cookies *cookie.Manager, opts ...SessionOption) (*SessionManager, error) {
	if store == nil {
		return nil, session.ErrNotConfigured
	}
	if cookies == nil || !cookies.CanSign() {
		return nil, cookie.ErrNoSecret
	}

	sm := &SessionManager{
		store:      store,
		cookies:    cookies,
		logger:     logger.NewNope(),
		newID:      id.NewSessionID,
		cookieName: DefaultSessionCookieName,
		ttl:        session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm, nil
}

// WithSessionTTL overrides the 24h session lifetime.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if ttl > 0 {
			sm.ttl = ttl
		}
	}
}

// WithSessionIDGenerator replaces the UUID v4 id generator.
func WithSessionIDGenerator(fn func() string) SessionOption {
	return func(sm *SessionManager) {
		if fn != nil {
			sm.newID = fn
		}
	}
}

// SetLogger sets the logger used for session lifecycle events.
func (sm *SessionManager) SetLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// CookieName returns the session cookie name.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

// TTL returns the session lifetime.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// Get returns the session bound to the request cookie.
// A missing cookie, a bad signature, or an unknown or expired id all
// yield (nil, nil). Store failures propagate.
func (sm *SessionManager) Get(ctx context.Context, r *http.Request) (*session.Data, error) {
	sid, ok := sm.sessionID(r)
	if !ok {
		return nil, nil
	}

	data, err := sm.store.Get(ctx, sid)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		sm.logger.ErrorContext(ctx, "session lookup failed",
			slog.String("session", session.ShortID(sid)),
			slog.Any("error", err),
		)
		return nil, err
	}
	return &data, nil
}

// Require is Get that fails with session.ErrUnauthorized when there is no session.
func (sm *SessionManager) Require(ctx context.Context, r *http.Request) (*session.Data, error) {
	data, err := sm.Get(ctx, r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, session.ErrUnauthorized
	}
	return data, nil
}

// Create stores data under a fresh id and sets the signed cookie.
// The cookie MaxAge matches the store TTL.
func (sm *SessionManager) Create(ctx context.Context, w http.ResponseWriter, data session.Data) (string, error) {
	sid := sm.newID()
	if err := sm.store.Put(ctx, sid, data, sm.ttl); err != nil {
		return "", err
	}
	if err := sm.cookies.SetSigned(w, sm.cookieName, sid, int(sm.ttl/time.Second)); err != nil {
		_ = sm.store.Delete(ctx, sid)
		return "", err
	}

	sm.logger.InfoContext(ctx, "session created", slog.String("session", session.ShortID(sid)))
	return sid, nil
}

// Destroy deletes the session if the cookie verifies and always expires the cookie.
// Calling it without a session is not an error.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer sm.cookies.Delete(w, sm.cookieName)

	sid, ok := sm.sessionID(r)
	if !ok {
		return nil
	}
	if err := sm.store.Delete(ctx, sid); err != nil {
		return err
	}

	sm.logger.InfoContext(ctx, "session destroyed", slog.String("session", session.ShortID(sid)))
	return nil
}

func (sm *SessionManager) sessionID(r *http.Request) (string, bool) {
	sid, err := sm.cookies.GetSigned(r, sm.cookieName)
	if err != nil || sid == "" {
		return "", false
	}
	return sid, true
}
