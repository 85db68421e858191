package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/member-portal/internal/apperror"
	"github.com/sakif/member-portal/internal/model"
	"github.com/sakif/member-portal/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user and fills in ID and CreatedAt.
//
// The insert is a single statement, so it is atomic: either the whole row
// exists afterwards or nothing does. A UNIQUE violation on email comes
// back from the driver as a typed *sqlite.Error; we translate the
// constraint codes into apperror.ErrDuplicateEmail so callers never see
// driver detail. Any other failure is wrapped as ErrUnavailable, fatal
// for this request and never retried here.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.PasswordHash,
		now,
	)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) {
			switch liteErr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
				return apperror.DuplicateEmail()
			}
		}
		return apperror.Unavailable(fmt.Errorf("sqlite: inserting user: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Unavailable(fmt.Errorf("sqlite: reading inserted id: %w", err))
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

// GetByEmail retrieves a user by normalized email.
// Returns apperror.ErrNotFound if no user exists with that email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, apperror.Unavailable(fmt.Errorf("sqlite: getting user by email: %w", err))
	}

	return &u, nil
}

// List returns all users in insertion order (ascending id).
func (db *DB) List(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users ORDER BY id ASC`,
	)
	if err != nil {
		return nil, apperror.Unavailable(fmt.Errorf("sqlite: listing users: %w", err))
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, apperror.Unavailable(fmt.Errorf("sqlite: scanning user row: %w", err))
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Unavailable(fmt.Errorf("sqlite: iterating user rows: %w", err))
	}

	return users, nil
}
