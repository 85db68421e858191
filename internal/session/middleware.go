package session

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
// Only this package can create a key of this type, so no other package can
// read or shadow the session value in a request context.
type contextKey string

const sessionKey contextKey = "session"

// RequireUser guards protected routes.
//
// Anonymous requests never reach the wrapped handler: they are redirected
// to the login page with a "please log in" flash notice. Authenticated
// requests proceed with the session stored in the request context, where
// handlers read it via FromContext.
//
// There is no code path on which a protected handler runs without a live
// session.
func RequireUser(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Current(r)
			if err != nil {
				m.Flash(w, "Please log in to view this page.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext retrieves the session placed in the context by RequireUser.
// Returns (nil, false) on anonymous requests.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*Session)
	return sess, ok && sess != nil
}
