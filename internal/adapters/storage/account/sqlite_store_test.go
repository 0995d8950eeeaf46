package account

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/storage"
	domain "github.com/supanat00/yaochaigym-data-record/internal/domain/account"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return NewSQLiteStore(db)
}

// TestSQLiteStore_RoundTrip tests save, lookup by username and by ID.
func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	locked := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	want := domain.Account{
		ID:           "a-1",
		Username:     "reception",
		PasswordHash: "$2a$12$hash",
		Role:         domain.RoleStaff,
		CreatedAt:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		FailedLogins: 3,
		LockedUntil:  locked,
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByUsername(ctx, "reception")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != "a-1" || got.PasswordHash != want.PasswordHash || got.Role != domain.RoleStaff {
		t.Errorf("got = %+v", got)
	}
	if got.FailedLogins != 3 || !got.LockedUntil.Equal(locked) {
		t.Errorf("lockout fields = %d/%v", got.FailedLogins, got.LockedUntil)
	}

	byID, err := store.GetByID(ctx, "a-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Username != "reception" {
		t.Errorf("Username = %s", byID.Username)
	}
}

// TestSQLiteStore_Count tests the account count used by admin seeding.
func TestSQLiteStore_Count(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}

	for i, username := range []string{"a", "b"} {
		a := domain.Account{
			ID:        username,
			Username:  username,
			Role:      domain.RoleStaff,
			CreatedAt: time.Date(2024, 5, 1+i, 0, 0, 0, 0, time.UTC),
		}
		if err := store.Save(ctx, a); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	n, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

// TestSQLiteStore_UniqueUsername tests the username uniqueness constraint.
func TestSQLiteStore_UniqueUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := domain.Account{ID: "a-1", Username: "dup", Role: domain.RoleStaff, CreatedAt: time.Now()}
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b := domain.Account{ID: "a-2", Username: "dup", Role: domain.RoleStaff, CreatedAt: time.Now()}
	if err := store.Save(ctx, b); err == nil {
		t.Error("expected unique constraint violation for duplicate username")
	}
}
