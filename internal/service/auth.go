// Package service contains the business logic layer of the application.
//
// The layering follows the usual shape:
//
//	Handler (HTTP)  → parses requests, renders pages, sets cookies
//	Service (rules) → validates, normalizes, enforces auth semantics
//	Repository (DB) → reads and writes the users table
//
// The service accepts plain strings and returns domain values and domain
// errors. It never sees an *http.Request and never produces a status code,
// so the same logic could back a CLI import tool or a JSON API unchanged.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/member-portal/internal/apperror"
	"github.com/sakif/member-portal/internal/auth"
	"github.com/sakif/member-portal/internal/model"
	"github.com/sakif/member-portal/internal/repository"
	"github.com/sakif/member-portal/internal/validate"
)

// AuthService handles registration, credential verification, and the
// user listing.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users     repository.UserRepository → the credential store
//   - passwords *auth.PasswordService     → bcrypt hash/verify
//   - logger    *slog.Logger              → structured logging
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// The store handle is passed in explicitly; there is no process-wide
// database state anywhere, which is what lets tests run against their own
// isolated stores.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// NormalizeEmail lowercases and trims an email address. Registration and
// login both go through this one function, so "  JUAN@TEST.COM " and
// "juan@test.com" always land on the same stored key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account from raw form input.
//
// Steps, in order:
//  1. Validate. A non-empty message list fails with ErrValidation
//     carrying every message (the form shows them all at once).
//  2. Normalize: username trimmed, email trimmed+lowercased.
//  3. Hash the password (bcrypt salts uniquely per call).
//  4. Insert. The store's UNIQUE index decides duplicates, so a race
//     between two identical registrations still yields exactly one row;
//     the loser gets ErrDuplicateEmail.
//
// One write on success, no writes on any failure.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if msgs := validate.UserInput(username, email, password); len(msgs) > 0 {
		return nil, apperror.ValidationFailed(msgs)
	}

	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateEmail) {
			// Not logged as an error: a duplicate registration attempt is
			// normal user behavior, not a fault.
			return nil, err
		}
		s.logger.Error("creating user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Authenticate verifies an email/password pair.
//
// Unknown email and wrong password return the SAME ErrInvalidCredentials:
// a caller (or an attacker driving the login form) cannot tell which field
// was wrong, so the user base can't be enumerated. The bcrypt comparison
// itself is constant-time.
//
// One read, no writes.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		s.logger.Error("looking up user for login",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}

	return user, nil
}

// ListUsers returns every registered user in insertion order, for the
// guarded members page.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("listing users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service/auth: listing users: %w", err)
	}
	return users, nil
}
