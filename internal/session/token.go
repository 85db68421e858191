package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "member-portal"

// TokenStore is a stateless Store: the session IS the token.
//
// Instead of a server-side map, Start signs the user's identity and expiry
// into an HS256 JWT. Get verifies the signature and expiry with no lookup
// at all, which makes this backend survive process restarts for free.
//
// THE TRADE-OFF:
// End cannot revoke anything; there is no server state to delete. Logout
// only removes the cookie, so a copied token stays valid until it expires.
// That is acceptable here because the lifetime is short and revocation is
// out of scope; deployments that need hard logout use MemoryStore instead.
type TokenStore struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenStore creates a TokenStore. The secret signs every session token
// and must be at least 16 bytes; the lifetime must be positive.
func NewTokenStore(secret string, lifetime time.Duration) (*TokenStore, error) {
	if len(secret) < 16 {
		return nil, errors.New("session: token secret must be at least 16 characters")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("session: lifetime must be positive, got %v", lifetime)
	}
	return &TokenStore{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

var _ Store = (*TokenStore)(nil)

// tokenClaims embeds the registered JWT claims and adds the username so a
// page can greet the user without a database read.
type tokenClaims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// Start signs a new session token for the user.
func (s *TokenStore) Start(userID int64, username string) (string, error) {
	now := s.now()

	c := tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			Issuer:    tokenIssuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("session: signing token: %w", err)
	}
	return signed, nil
}

// Get verifies a token and reconstructs the session from its claims.
//
// The validation options pin the algorithm to HS256 (blocking algorithm
// confusion attacks), require our issuer, and require an expiry claim.
// Any verification failure (tampered, expired, foreign issuer) collapses
// into ErrNoSession.
func (s *TokenStore) Get(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&tokenClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("session: unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrNoSession
	}

	c, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return nil, ErrNoSession
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrNoSession
	}

	return &Session{
		UserID:    userID,
		Username:  c.Username,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// End is a no-op: a signed token carries its own state, so "ending" it is
// the caller deleting the cookie. Present for Store symmetry.
func (s *TokenStore) End(string) error {
	return nil
}
