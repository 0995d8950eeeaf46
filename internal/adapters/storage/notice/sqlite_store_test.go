package notice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/storage"
	domain "github.com/supanat00/yaochaigym-data-record/internal/domain/notice"
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

func saveNotice(t *testing.T, store *SQLiteStore, id string, pinned bool, createdAt time.Time, status string) {
	t.Helper()
	n := domain.Notice{
		ID:        id,
		Status:    status,
		Title:     "ประกาศ " + id,
		Content:   "เนื้อหา",
		Color:     domain.ColorOrange,
		Pinned:    pinned,
		CreatedBy: "a-1",
		CreatedAt: createdAt,
	}
	if err := store.Save(context.Background(), n); err != nil {
		t.Fatalf("Save %s: %v", id, err)
	}
}

// TestSQLiteStore_RoundTrip tests the full-field round trip.
func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	published := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	want := domain.Notice{
		ID:          "n-1",
		Status:      domain.StatusPublished,
		Title:       "ปิดปรับปรุง",
		Content:     "**ปิด** วันเสาร์",
		Color:       domain.ColorRed,
		Pinned:      true,
		CreatedBy:   "a-1",
		CreatedAt:   time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC),
		PublishedAt: published,
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, "n-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != want.Title || got.Content != want.Content || got.Color != domain.ColorRed {
		t.Errorf("got = %+v", got)
	}
	if !got.Pinned || !got.PublishedAt.Equal(published) {
		t.Errorf("pinned/published = %v/%v", got.Pinned, got.PublishedAt)
	}
}

// TestSQLiteStore_ListOrder tests pinned-first then newest-first ordering.
func TestSQLiteStore_ListOrder(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	saveNotice(t, store, "old", false, base, domain.StatusPublished)
	saveNotice(t, store, "new", false, base.Add(time.Hour), domain.StatusPublished)
	saveNotice(t, store, "pinned", true, base.Add(-time.Hour), domain.StatusPublished)

	all, err := store.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	wantOrder := []string{"pinned", "new", "old"}
	for i, want := range wantOrder {
		if all[i].ID != want {
			t.Errorf("order[%d] = %s, want %s", i, all[i].ID, want)
		}
	}
}

// TestSQLiteStore_ListByStatus tests the status filter.
func TestSQLiteStore_ListByStatus(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	saveNotice(t, store, "d-1", false, base, domain.StatusDraft)
	saveNotice(t, store, "p-1", false, base, domain.StatusPublished)

	published, err := store.List(context.Background(), ListFilter{Status: domain.StatusPublished})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(published) != 1 || published[0].ID != "p-1" {
		t.Errorf("published = %+v, want only p-1", published)
	}
}
