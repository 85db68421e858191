// Package session manages the per-client authentication state.
//
// A session is the server-recognized proof that a prior login succeeded and
// has not yet expired or been ended. The package covers three concerns:
//
//   - Store: where session state lives. Two backends are provided (a
//     server-side in-memory store and a stateless signed-token store) and
//     the rest of the app only sees the Store interface, so the backing can
//     change without touching handlers.
//   - Manager: the HTTP edge. Cookies, flash notices, login/logout.
//   - RequireUser: the guard middleware for protected routes.
package session

import (
	"errors"
	"time"
)

// ErrNoSession is returned by Store.Get when the token is absent, unknown,
// tampered with, or expired. All four cases collapse into one error on
// purpose: to the caller they all mean "anonymous".
var ErrNoSession = errors.New("session: no active session")

// Session is the authenticated state carried between requests.
type Session struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the session's lifetime has passed.
// Expiry is checked lazily at access time; there is no background sweep.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store abstracts where session state is kept.
//
// Start creates a session for the given user and returns an opaque token
// for the client to present on later requests. Get resolves a token back
// to its session, returning ErrNoSession for anything that does not map to
// a live, unexpired session. End invalidates a token; ending an unknown
// token is a no-op.
type Store interface {
	Start(userID int64, username string) (string, error)
	Get(token string) (*Session, error)
	End(token string) error
}
