package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sakif/member-portal/internal/apperror"
	"github.com/sakif/member-portal/internal/service"
	"github.com/sakif/member-portal/internal/session"
)

// AuthHandler serves the registration, login, and logout routes.
//
// ROUTE MAP:
//
//	GET  /register → registration form
//	POST /register → create the account, redirect home on success
//	GET  /login    → login form
//	POST /login    → start a session, redirect home on success
//	GET  /logout   → end the session, redirect home (no-op when anonymous)
//
// FAILURE SHAPE:
// Failed submits re-render their form with HTTP 200 and the error messages
// in the page; only successes redirect (303). That mirrors the classic
// server-rendered form flow: the browser stays on the form, the user
// corrects it, nothing is lost.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	renderer *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(
	auth *service.AuthService,
	sessions *session.Manager,
	renderer *Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleRegisterForm serves the empty registration form.
//
// HTTP: GET /register
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "register", Page{
		Title:   "Create your account",
		Flashes: h.sessions.PopFlashes(w, r),
		Form:    url.Values{},
	})
}

// HandleRegister processes a registration submit.
//
// HTTP: POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.Register(r.Context(), username, email, password)
	if err != nil {
		h.renderRegisterFailure(w, r, err)
		return
	}

	h.logger.Info("registration completed", slog.Int64("userID", user.ID))

	h.sessions.Flash(w, "Account created. You can now log in.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderRegisterFailure maps a registration error back onto the form.
// The password is never echoed back; name and email stay sticky.
func (h *AuthHandler) renderRegisterFailure(w http.ResponseWriter, r *http.Request, err error) {
	form := url.Values{}
	form.Set("name", r.PostFormValue("name"))
	form.Set("email", r.PostFormValue("email"))

	page := Page{
		Title: "Create your account",
		Form:  form,
	}

	var appErr *apperror.AppError
	switch {
	case errors.Is(err, apperror.ErrValidation) && errors.As(err, &appErr):
		page.Errors = appErr.Messages
	case errors.Is(err, apperror.ErrDuplicateEmail):
		page.Errors = []string{"That email address is already registered. Try logging in instead."}
	default:
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		renderFailure(w)
		return
	}

	h.renderer.Render(w, http.StatusOK, "register", page)
}

// HandleLoginForm serves the login form.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login", Page{
		Title:   "Log in",
		Flashes: h.sessions.PopFlashes(w, r),
		Form:    url.Values{},
	})
}

// HandleLogin processes a login submit.
//
// HTTP: POST /login
//
// The failure message is the same for an unknown email and a wrong
// password. The service already returns identical errors for both, and
// the handler adds nothing that would tell them apart.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidCredentials) {
			form := url.Values{}
			form.Set("email", email)
			h.renderer.Render(w, http.StatusOK, "login", Page{
				Title:  "Log in",
				Errors: []string{"Invalid email or password."},
				Form:   form,
			})
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		renderFailure(w)
		return
	}

	if err := h.sessions.Login(w, user.ID, user.Username); err != nil {
		h.logger.Error("starting session",
			slog.Int64("userID", user.ID),
			slog.String("error", err.Error()),
		)
		renderFailure(w)
		return
	}

	h.sessions.Flash(w, fmt.Sprintf("Welcome back, %s.", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout ends the current session and redirects home.
//
// HTTP: GET /logout
//
// Logging out without a session is a no-op with the same outcome: the
// redirect home happens either way, no error page.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	h.sessions.Flash(w, "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
