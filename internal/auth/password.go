// Package auth provides password hashing and verification.
//
// WHY BCRYPT?
// bcrypt is deliberately slow; that slowness is the defence against
// brute-force attacks on a stolen database. It also generates a random
// salt on every call and embeds it in the output, so:
//   - two users with the same password store different hashes
//   - hashing the same password twice yields different hashes
//   - no separate salt column is needed
//
// The stored string looks like:
//
//	$2a$12$<22-char salt><31-char hash>
//
// and bcrypt.CompareHashAndPassword knows how to decode it, including a
// constant-time comparison that defeats timing attacks.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor: ~250ms per hash on current server
// hardware. Negligible for a login form, brutal for an attacker who needs
// billions of guesses.
const defaultCost = 12

// ErrPasswordMismatch is returned by Verify when the password does not
// match the stored hash. Callers must not surface anything more specific.
var ErrPasswordMismatch = errors.New("auth: password mismatch")

// PasswordService hashes and verifies passwords with bcrypt.
//
// It's a struct (not free functions) so the cost can be injected: tests use
// bcrypt's minimum cost to run in milliseconds instead of ~250ms per hash.
type PasswordService struct {
	cost int
}

// NewPasswordService returns a PasswordService with the production cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost returns a PasswordService with a custom bcrypt
// cost. Intended for tests (bcrypt.MinCost); do not lower the cost in
// production.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. The result is self-contained (salt and
// cost included) and goes straight into the password_hash column.
//
// bcrypt silently truncates input beyond 72 bytes; we reject such passwords
// explicitly so callers aren't surprised.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored bcrypt hash.
// Returns nil on match and ErrPasswordMismatch on mismatch. The comparison
// is constant-time inside the bcrypt library.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
