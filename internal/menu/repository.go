package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for menu catalogue persistence.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	ListWithCategory(ctx context.Context) ([]ItemWithCategory, error)
	ListCategories(ctx context.Context) ([]Category, error)
	LastID(ctx context.Context) (int64, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed menu repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const itemColumns = "id, nama, harga, kategori_id, created_at, updated_at"

// Create inserts a new menu item. A zero ID lets SQLite assign the next
// rowid; a non-zero ID is honoured so clients can pre-compute IDs from
// LastID. Duplicate IDs and duplicate names both return ErrItemExists.
func (r *SQLiteRepository) Create(ctx context.Context, item *Item) error {
	now := time.Now().UTC().Format(time.RFC3339)
	item.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	item.UpdatedAt = item.CreatedAt

	var (
		result sql.Result
		err    error
	)
	if item.ID == 0 {
		result, err = r.db.ExecContext(ctx,
			`INSERT INTO menu (nama, harga, kategori_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			item.Nama, item.Harga, item.KategoriID, now, now,
		)
	} else {
		result, err = r.db.ExecContext(ctx,
			`INSERT INTO menu (id, nama, harga, kategori_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, item.Nama, item.Harga, item.KategoriID, now, now,
		)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return ErrItemExists
		}
		return fmt.Errorf("creating menu item: %w", err)
	}

	if item.ID == 0 {
		item.ID, _ = result.LastInsertId() //nolint:errcheck // sqlite3 always reports the rowid
	}

	return nil
}

// GetByID retrieves a single menu item.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	var (
		item      Item
		createdAt string
		updatedAt string
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM menu WHERE id = ?", id,
	).Scan(&item.ID, &item.Nama, &item.Harga, &item.KategoriID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("getting menu item: %w", err)
	}

	item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // stored format is controlled
	item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // stored format is controlled
	return &item, nil
}

// List returns all menu items ordered by ID.
func (r *SQLiteRepository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM menu ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			item      Item
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&item.ID, &item.Nama, &item.Harga,
			&item.KategoriID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // stored format is controlled
		item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // stored format is controlled
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}

	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// ListWithCategory returns all menu items joined with their category name.
func (r *SQLiteRepository) ListWithCategory(ctx context.Context) ([]ItemWithCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.nama, m.harga, m.kategori_id, m.created_at, m.updated_at, k.nama
		FROM menu m
		JOIN kategori k ON k.id = m.kategori_id
		ORDER BY m.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing menu with categories: %w", err)
	}
	defer rows.Close()

	var items []ItemWithCategory
	for rows.Next() {
		var (
			item      ItemWithCategory
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&item.ID, &item.Nama, &item.Harga,
			&item.KategoriID, &createdAt, &updatedAt, &item.Kategori); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // stored format is controlled
		item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // stored format is controlled
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}

	if items == nil {
		items = []ItemWithCategory{}
	}
	return items, nil
}

// ListCategories returns all menu categories ordered by ID.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, nama FROM kategori ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Nama); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// LastID returns the highest menu item ID, or 0 for an empty catalogue.
// Clients use it to pre-compute the next ID before a create.
func (r *SQLiteRepository) LastID(ctx context.Context) (int64, error) {
	var last sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(id) FROM menu").Scan(&last); err != nil {
		return 0, fmt.Errorf("getting last menu ID: %w", err)
	}
	return last.Int64, nil
}

// Update modifies a menu item's name, price, and category.
func (r *SQLiteRepository) Update(ctx context.Context, item *Item) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		"UPDATE menu SET nama = ?, harga = ?, kategori_id = ?, updated_at = ? WHERE id = ?",
		item.Nama, item.Harga, item.KategoriID, now, item.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrItemExists
		}
		return fmt.Errorf("updating menu item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete removes a menu item permanently.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM menu WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "unique constraint"))
}
