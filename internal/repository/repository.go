// Package repository defines the storage contracts consumed by the service
// layer. Concrete implementations live in subpackages (sqlite); services
// depend only on these interfaces, so tests swap in fakes and the backing
// store can change without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/member-portal/internal/model"
)

// UserRepository is the credential store contract.
//
// Create persists a new user and fills in ID and CreatedAt. The caller must
// pass an already-normalized email and a password hash, never plaintext.
// A colliding normalized email fails with apperror.ErrDuplicateEmail; the
// store's own UNIQUE constraint enforces this, so the guarantee holds even
// when two registrations race.
//
// GetByEmail looks up by normalized email, returning apperror.ErrNotFound
// when no such user exists.
//
// List returns every user in insertion order (ascending id).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}
