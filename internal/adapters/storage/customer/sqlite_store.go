package customer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/storage"
	domain "github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CustomerStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const customerColumns = "id, full_name, phone, course_type, start_date, duration_or_package, original_end_date, manual_end_date, total_compensation_days, remaining_sessions, bonus_sessions, check_in_history"

// GetByID retrieves a Customer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customer WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanCustomer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Customer{}, fmt.Errorf("customer not found: %w", err)
	}
	return entity, err
}

// Save persists a Customer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Customer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "full_name", "phone", "course_type", "start_date", "duration_or_package", "original_end_date", "manual_end_date", "total_compensation_days", "remaining_sessions", "bonus_sessions", "check_in_history"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"full_name=excluded.full_name",
		"phone=excluded.phone",
		"course_type=excluded.course_type",
		"start_date=excluded.start_date",
		"duration_or_package=excluded.duration_or_package",
		"original_end_date=excluded.original_end_date",
		"manual_end_date=excluded.manual_end_date",
		"total_compensation_days=excluded.total_compensation_days",
		"remaining_sessions=excluded.remaining_sessions",
		"bonus_sessions=excluded.bonus_sessions",
		"check_in_history=excluded.check_in_history",
	}

	query := fmt.Sprintf(
		"INSERT INTO customer (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	history, err := marshalHistory(entity.CheckInHistory)
	if err != nil {
		return err
	}

	var manualEnd interface{}
	if !entity.ManualEndDate.IsZero() {
		manualEnd = dates.FormatISO(entity.ManualEndDate)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.FullName,
		entity.Phone,
		entity.CourseType,
		dates.FormatISO(entity.StartDate),
		entity.DurationOrPackage,
		dates.FormatISO(entity.OriginalEndDate),
		manualEnd,
		entity.TotalCompensationDays,
		entity.RemainingSessions,
		entity.BonusSessions,
		history,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Customer from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM customer WHERE id = ?", id)
	return err
}

// List retrieves all Customers. Filtering and ordering are projection
// concerns, so the store returns rows in insertion order.
// PRE: none
// POST: Returns all stored customers
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customer ORDER BY rowid"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Customer
	for rows.Next() {
		entity, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanCustomer extracts a Customer from a row scanner function.
func scanCustomer(scan func(dest ...interface{}) error) (domain.Customer, error) {
	var entity domain.Customer
	var startDate, originalEnd, history string
	var manualEnd sql.NullString
	err := scan(
		&entity.ID,
		&entity.FullName,
		&entity.Phone,
		&entity.CourseType,
		&startDate,
		&entity.DurationOrPackage,
		&originalEnd,
		&manualEnd,
		&entity.TotalCompensationDays,
		&entity.RemainingSessions,
		&entity.BonusSessions,
		&history,
	)
	if err != nil {
		return domain.Customer{}, err
	}

	entity.StartDate, _ = dates.Parse(startDate)
	entity.OriginalEndDate, _ = dates.Parse(originalEnd)
	if manualEnd.Valid && manualEnd.String != "" {
		entity.ManualEndDate, _ = dates.Parse(manualEnd.String)
	}
	entity.CheckInHistory, err = unmarshalHistory(history)
	if err != nil {
		return domain.Customer{}, err
	}
	return entity, nil
}

// marshalHistory encodes the check-in log as a JSON array of YYYY-MM-DD
// strings, the same shape the dashboard edit form round-trips.
func marshalHistory(history []time.Time) (string, error) {
	strs := make([]string, 0, len(history))
	for _, t := range history {
		strs = append(strs, dates.FormatISO(t))
	}
	b, err := json.Marshal(strs)
	if err != nil {
		return "", fmt.Errorf("failed to encode check-in history: %w", err)
	}
	return string(b), nil
}

func unmarshalHistory(raw string) ([]time.Time, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil, fmt.Errorf("failed to decode check-in history: %w", err)
	}
	out := make([]time.Time, 0, len(strs))
	for _, s := range strs {
		t, ok := dates.Parse(s)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
