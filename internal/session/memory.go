package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
)

// MemoryStore keeps sessions in process memory, guarded by a mutex.
//
// TOKEN SHAPE: "<id>.<secret>"
// The id is an xid, safe to log and index by. The secret is 32 bytes from
// crypto/rand, hex-encoded, and is the part that actually authenticates the
// client. Splitting the two means log lines and error messages can name a
// session without ever containing the credential.
//
// EXPIRY IS LAZY:
// An expired session is detected (and deleted) the next time its token is
// presented. There is no background sweeper; the map only ever holds as
// many entries as there were logins in the last lifetime window, which for
// this app is tiny.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	lifetime time.Duration
	now      func() time.Time // injectable clock for expiry tests
}

type memoryEntry struct {
	secret  string
	session Session
}

// NewMemoryStore creates a MemoryStore with the given session lifetime.
// The lifetime must be positive; it is fixed once at process start.
func NewMemoryStore(lifetime time.Duration) (*MemoryStore, error) {
	if lifetime <= 0 {
		return nil, fmt.Errorf("session: lifetime must be positive, got %v", lifetime)
	}
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

var _ Store = (*MemoryStore)(nil)

// Start creates a session for the user and returns its token.
func (s *MemoryStore) Start(userID int64, username string) (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("session: generating secret: %w", err)
	}

	id := xid.New().String()
	secret := hex.EncodeToString(secretBytes)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memoryEntry{
		secret: secret,
		session: Session{
			UserID:    userID,
			Username:  username,
			ExpiresAt: s.now().Add(s.lifetime),
		},
	}

	return id + "." + secret, nil
}

// Get resolves a token to its session. Expired sessions are deleted on the
// spot and reported as ErrNoSession, the same as unknown or malformed
// tokens. A caller can't distinguish "never existed" from "expired".
func (s *MemoryStore) Get(token string) (*Session, error) {
	id, secret, ok := splitToken(token)
	if !ok {
		return nil, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.sessions[id]
	if !found {
		return nil, ErrNoSession
	}

	// Constant-time comparison: the id already selected the entry, so the
	// secret check must not leak how many bytes matched.
	if subtle.ConstantTimeCompare([]byte(entry.secret), []byte(secret)) != 1 {
		return nil, ErrNoSession
	}

	if entry.session.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, ErrNoSession
	}

	sess := entry.session
	return &sess, nil
}

// End invalidates a token. Unknown or malformed tokens are a no-op.
func (s *MemoryStore) End(token string) error {
	id, _, ok := splitToken(token)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func splitToken(token string) (id, secret string, ok bool) {
	id, secret, ok = strings.Cut(token, ".")
	if !ok || id == "" || secret == "" {
		return "", "", false
	}
	return id, secret, true
}
