package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/member-portal/internal/service"
	"github.com/sakif/member-portal/internal/session"
)

// UsersHandler serves the protected members listing.
type UsersHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	renderer *Renderer
	logger   *slog.Logger
}

// NewUsersHandler creates a UsersHandler.
func NewUsersHandler(
	auth *service.AuthService,
	sessions *session.Manager,
	renderer *Renderer,
	logger *slog.Logger,
) *UsersHandler {
	return &UsersHandler{
		auth:     auth,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleList serves the registered-users table.
//
// HTTP: GET /users
// Auth: required. The route is mounted behind session.RequireUser, so an
// anonymous request is redirected before this handler runs. The session is
// read from the context the guard populated.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		// Unreachable behind the guard; kept so mounting the handler
		// without it fails closed instead of serving the list.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("listing users", slog.String("error", err.Error()))
		renderFailure(w)
		return
	}

	h.renderer.Render(w, http.StatusOK, "users", Page{
		Title:   "Registered users",
		User:    sess,
		Flashes: h.sessions.PopFlashes(w, r),
		Users:   users,
	})
}
