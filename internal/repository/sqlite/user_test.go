package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sakif/member-portal/internal/apperror"
	"github.com/sakif/member-portal/internal/model"
)

// newTestDB returns a *DB backed by a throwaway database file that goes
// away with the test's temp dir.
//
// A file (not ":memory:") because database/sql is a connection POOL: every
// new pool connection to ":memory:" would get its own empty database, which
// breaks any test that touches the pool from more than one goroutine.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, username, email string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$notarealhashbutlongenoughforthecolumn",
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreate(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Username:     "Juan Pérez",
		Email:        "juan@test.com",
		PasswordHash: "$2a$04$hash",
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestCreate_IDsAreMonotonic(t *testing.T) {
	db := newTestDB(t)

	first := createTestUser(t, db, "First", "first@test.com")
	second := createTestUser(t, db, "Second", "second@test.com")

	if second.ID <= first.ID {
		t.Errorf("ids not monotonic: first=%d second=%d", first.ID, second.ID)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	createTestUser(t, db, "Juan Pérez", "juan@test.com")

	duplicate := &model.User{
		Username:     "Otro Usuario",
		Email:        "juan@test.com",
		PasswordHash: "$2a$04$otherhash",
	}
	err := db.Create(context.Background(), duplicate)
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Fatalf("Create() error = %v, want ErrDuplicateEmail", err)
	}

	// A failed insert must leave no partial row.
	users, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("store has %d rows for juan@test.com, want exactly 1", len(users))
	}
}

// TestCreate_ConcurrentDuplicates races two inserts with the same email:
// the UNIQUE index must let exactly one through regardless of timing.
func TestCreate_ConcurrentDuplicates(t *testing.T) {
	db := newTestDB(t)

	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.Create(context.Background(), &model.User{
				Username:     "Racer",
				Email:        "race@test.com",
				PasswordHash: "$2a$04$hash",
			})
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperror.ErrDuplicateEmail):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || duplicates != 1 {
		t.Errorf("got %d successes and %d duplicates, want exactly 1 of each", successes, duplicates)
	}

	users, _ := db.List(context.Background())
	if len(users) != 1 {
		t.Errorf("store has %d rows after the race, want 1", len(users))
	}
}

// =========================================================================
// GET BY EMAIL TESTS
// =========================================================================

func TestGetByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "Juan Pérez", "juan@test.com")

	got, err := db.GetByEmail(context.Background(), "juan@test.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail() ID = %d, want %d", got.ID, created.ID)
	}
	if got.Username != "Juan Pérez" {
		t.Errorf("GetByEmail() Username = %q, want %q", got.Username, "Juan Pérez")
	}
	if got.PasswordHash != created.PasswordHash {
		t.Error("GetByEmail() did not return the stored hash")
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByEmail(context.Background(), "inexistente@test.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestList_Empty(t *testing.T) {
	db := newTestDB(t)

	users, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("List() on empty store returned %d users", len(users))
	}
}

func TestList_InsertionOrder(t *testing.T) {
	db := newTestDB(t)

	createTestUser(t, db, "Juan Pérez", "juan@test.com")
	createTestUser(t, db, "María García", "maria@test.com")
	createTestUser(t, db, "Carlos López", "carlos@test.com")

	users, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("List() returned %d users, want 3", len(users))
	}

	wantOrder := []string{"juan@test.com", "maria@test.com", "carlos@test.com"}
	for i, want := range wantOrder {
		if users[i].Email != want {
			t.Errorf("List()[%d].Email = %q, want %q", i, users[i].Email, want)
		}
	}
}
