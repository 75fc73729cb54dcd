package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// dateFormat is the calendar-day key stored in the tanggal column.
const dateFormat = "2006-01-02"

// Repository defines the interface for attendance persistence.
type Repository interface {
	CheckIn(ctx context.Context, nip string, at time.Time) (*Record, error)
	CheckOut(ctx context.Context, id int64, at time.Time) (*Record, error)
	GetByID(ctx context.Context, id int64) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByNIP(ctx context.Context, nip string) ([]Record, error)
	Delete(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed attendance repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const recordColumns = "id, nip, tanggal, jam_masuk, jam_keluar, created_at, updated_at"

// CheckIn opens a new attendance record for the given NIP at the given
// time. A second check-in for the same NIP on the same calendar day
// returns ErrAlreadyCheckedIn; the unique index on (nip, tanggal) is
// the arbiter, so concurrent check-ins cannot both succeed.
func (r *SQLiteRepository) CheckIn(ctx context.Context, nip string, at time.Time) (*Record, error) {
	date := at.Format(dateFormat)

	now := time.Now().UTC().Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO log_absensi (nip, tanggal, jam_masuk, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		nip, date, at.UTC().Format(time.RFC3339), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("recording check-in: %w", err)
	}

	id, _ := result.LastInsertId() //nolint:errcheck // sqlite3 always reports the rowid
	return r.GetByID(ctx, id)
}

// CheckOut closes an open attendance record. Clocking out twice returns
// ErrAlreadyCheckedOut.
func (r *SQLiteRepository) CheckOut(ctx context.Context, id int64, at time.Time) (*Record, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.ClockOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx,
		"UPDATE log_absensi SET jam_keluar = ?, updated_at = ? WHERE id = ?",
		at.UTC().Format(time.RFC3339), now, id,
	); err != nil {
		return nil, fmt.Errorf("recording check-out: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a single attendance record.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM log_absensi WHERE id = ?", id)

	record, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("getting attendance record: %w", err)
	}
	return record, nil
}

// List returns all attendance records, most recent day first.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	return r.list(ctx,
		"SELECT "+recordColumns+" FROM log_absensi ORDER BY tanggal DESC, id DESC")
}

// ListByNIP returns one employee's attendance records, most recent day first.
func (r *SQLiteRepository) ListByNIP(ctx context.Context, nip string) ([]Record, error) {
	return r.list(ctx,
		"SELECT "+recordColumns+" FROM log_absensi WHERE nip = ? ORDER BY tanggal DESC, id DESC", nip)
}

// Delete removes an attendance record permanently.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM log_absensi WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting attendance record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting attendance record: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing attendance records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning attendance record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attendance records: %w", err)
	}

	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// scanRecord reads one row via the given Scan function, converting the
// nullable clock columns and TEXT timestamps.
func scanRecord(scan func(...any) error) (*Record, error) {
	var (
		record    Record
		clockIn   sql.NullString
		clockOut  sql.NullString
		createdAt string
		updatedAt string
	)

	if err := scan(&record.ID, &record.NIP, &record.Date,
		&clockIn, &clockOut, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if clockIn.Valid {
		if t, err := time.Parse(time.RFC3339, clockIn.String); err == nil {
			record.ClockIn = &t
		}
	}
	if clockOut.Valid {
		if t, err := time.Parse(time.RFC3339, clockOut.String); err == nil {
			record.ClockOut = &t
		}
	}

	record.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // stored format is controlled
	record.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // stored format is controlled
	return &record, nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
