package notice

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/storage"
	domain "github.com/supanat00/yaochaigym-data-record/internal/domain/notice"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new NoticeStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const noticeColumns = "id, status, title, content, color, pinned, created_by, created_at, published_at"

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	query := "SELECT " + noticeColumns + " FROM notice WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanNotice(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	return entity, err
}

// Save persists a Notice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "status", "title", "content", "color", "pinned", "created_by", "created_at", "published_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"status=excluded.status",
		"title=excluded.title",
		"content=excluded.content",
		"color=excluded.color",
		"pinned=excluded.pinned",
		"published_at=excluded.published_at",
	}

	query := fmt.Sprintf(
		"INSERT INTO notice (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var publishedAt interface{}
	if !entity.PublishedAt.IsZero() {
		publishedAt = entity.PublishedAt.Format(time.RFC3339Nano)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Status,
		entity.Title,
		entity.Content,
		entity.Color,
		boolToInt(entity.Pinned),
		entity.CreatedBy,
		entity.CreatedAt.Format(time.RFC3339Nano),
		publishedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Notice from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// List retrieves Notices, pinned first then newest first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Notice, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + noticeColumns + " FROM notice")
	if filter.Status != "" {
		queryBuilder.WriteString(" WHERE status = ?")
		args = append(args, filter.Status)
	}
	queryBuilder.WriteString(" ORDER BY pinned DESC, created_at DESC")

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanNotice extracts a Notice from a row scanner function.
func scanNotice(scan func(dest ...interface{}) error) (domain.Notice, error) {
	var entity domain.Notice
	var pinned int
	var createdAt string
	var publishedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.Status,
		&entity.Title,
		&entity.Content,
		&entity.Color,
		&pinned,
		&entity.CreatedBy,
		&createdAt,
		&publishedAt,
	)
	if err != nil {
		return domain.Notice{}, err
	}
	entity.Pinned = pinned != 0
	entity.CreatedAt, _ = parseTime(createdAt)
	if publishedAt.Valid && publishedAt.String != "" {
		entity.PublishedAt, _ = parseTime(publishedAt.String)
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
