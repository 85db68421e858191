package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/member-portal/internal/session"
)

// HomeHandler serves the landing page.
//
// The home page is public but session-aware: a logged-in visitor sees
// their name and the logout link, an anonymous one sees the register and
// login links. The session lookup is best-effort: any failure just means
// "anonymous", never an error page.
type HomeHandler struct {
	sessions *session.Manager
	renderer *Renderer
	logger   *slog.Logger
}

// NewHomeHandler creates a HomeHandler.
func NewHomeHandler(sessions *session.Manager, renderer *Renderer, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleHome serves the landing page.
//
// HTTP: GET /
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Current(r)
	if err != nil {
		sess = nil // anonymous
	}

	h.renderer.Render(w, http.StatusOK, "home", Page{
		Title:   "Welcome",
		User:    sess,
		Flashes: h.sessions.PopFlashes(w, r),
	})
}
