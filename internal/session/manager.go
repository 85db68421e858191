package session

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cookie names used by the Manager.
const (
	cookieName = "mp_session"
	flashName  = "mp_flash"
)

// Manager is the HTTP edge of the session subsystem. It owns the cookies:
// which names they use, their attributes, and the one-shot flash notices
// that ride along with redirects.
//
// COOKIE ATTRIBUTES:
// HttpOnly keeps JavaScript away from the token (XSS can't steal it).
// SameSite=Lax sends the cookie on top-level navigations but not cross-site
// POSTs. Secure is left to the deployment's TLS terminator.
type Manager struct {
	store    Store
	lifetime time.Duration
	logger   *slog.Logger
}

// NewManager wires a Manager to its backing Store. The lifetime controls
// the cookie MaxAge and must match the Store's own expiry window.
func NewManager(store Store, lifetime time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		lifetime: lifetime,
		logger:   logger,
	}
}

// Current resolves the request's session cookie.
// Returns ErrNoSession when the request is anonymous for any reason:
// no cookie, unknown token, expired session.
func (m *Manager) Current(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.store.Get(cookie.Value)
}

// Login starts a session for the user and sets the session cookie.
func (m *Manager) Login(w http.ResponseWriter, userID int64, username string) error {
	token, err := m.store.Start(userID, username)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	m.logger.Info("session started",
		slog.Int64("userID", userID),
		slog.String("username", username),
	)
	return nil
}

// Logout ends the request's session, if any, and clears the cookie.
//
// Logging out while anonymous is a no-op: the cookie is cleared again (a
// harmless repeat) and no error is produced. The caller redirects the same
// way in both cases.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if err := m.store.End(cookie.Value); err != nil {
			m.logger.Warn("ending session", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash attaches one-shot notices to the response. They survive exactly one
// redirect: the next render pops and clears them.
//
// Messages are URL-escaped and newline-joined because cookie values cannot
// contain spaces, commas, or semicolons.
func (m *Manager) Flash(w http.ResponseWriter, messages ...string) {
	if len(messages) == 0 {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashName,
		Value:    url.QueryEscape(strings.Join(messages, "\n")),
		Path:     "/",
		MaxAge:   300, // flashes not consumed within 5 minutes are stale
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes consumes pending flash notices: reads them, clears the cookie,
// returns the messages. Returns nil when there is nothing to show.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(flashName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	return strings.Split(decoded, "\n")
}
