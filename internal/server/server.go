// Package server wires the application together: router, middleware,
// handlers, and the dependency graph, plus startup and graceful shutdown.
//
// This is the composition root: every dependency is constructed and
// connected here, in one place, rather than scattered across packages.
// The flow:
//
//	config → sqlite.DB → AuthService ─┐
//	config → session.Store → Manager ─┼→ handlers → routes
//	templates → Renderer ─────────────┘
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/member-portal/internal/auth"
	"github.com/sakif/member-portal/internal/config"
	"github.com/sakif/member-portal/internal/handler"
	"github.com/sakif/member-portal/internal/middleware"
	sqliteRepo "github.com/sakif/member-portal/internal/repository/sqlite"
	"github.com/sakif/member-portal/internal/service"
	"github.com/sakif/member-portal/internal/session"
)

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph from the config.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// newSessionStore picks the session backend the config asked for.
// The rest of the wiring only sees the session.Store interface.
func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.SessionBackend {
	case config.BackendToken:
		return session.NewTokenStore(cfg.SessionSecret, cfg.SessionLifetime)
	default:
		return session.NewMemoryStore(cfg.SessionLifetime)
	}
}

// setupRoutes configures middleware and all route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /static/*   → css + js
//	GET  /           → home (public, session-aware)
//	GET  /register   → registration form
//	POST /register   → create account
//	GET  /login      → login form
//	POST /login      → authenticate, start session
//	GET  /logout     → end session
//	GET  /users      → registered users (login required)
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Static files ===
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// === Dependency graph ===
	store, err := newSessionStore(s.config)
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}
	sessions := session.NewManager(store, s.config.SessionLifetime, s.logger)

	renderer, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	authService := service.NewAuthService(s.db, auth.NewPasswordService(), s.logger)

	homeHandler := handler.NewHomeHandler(sessions, renderer, s.logger)
	authHandler := handler.NewAuthHandler(authService, sessions, renderer, s.logger)
	usersHandler := handler.NewUsersHandler(authService, sessions, renderer, s.logger)

	// === Public routes ===
	s.router.Get("/", homeHandler.HandleHome)
	s.router.Get("/register", authHandler.HandleRegisterForm)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/logout", authHandler.HandleLogout)

	// === Protected routes ===
	// Everything in this group sits behind the session guard: anonymous
	// requests are redirected to /login and never reach a handler.
	s.router.Group(func(r chi.Router) {
		r.Use(session.RequireUser(sessions))
		r.Get("/users", usersHandler.HandleList)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database (flushing the WAL).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("sessionBackend", s.config.SessionBackend),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
