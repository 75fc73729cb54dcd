package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IdentityRepository defines the interface for account persistence.
type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
	List(ctx context.Context) ([]Identity, error)
	Update(ctx context.Context, identity *Identity) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SQLiteIdentityRepository implements IdentityRepository using SQLite.
type SQLiteIdentityRepository struct {
	db *sql.DB
}

// NewIdentityRepository creates a new SQLite-backed identity repository.
func NewIdentityRepository(db *sql.DB) *SQLiteIdentityRepository {
	return &SQLiteIdentityRepository{db: db}
}

const identityColumns = "id, email, password_hash, role_id, created_at, updated_at"

// Create inserts a new account. The ID is generated if empty. The UNIQUE
// constraint on email is the single arbiter under concurrent
// registration: exactly one insert wins, the rest get ErrEmailExists.
func (r *SQLiteIdentityRepository) Create(ctx context.Context, identity *Identity) error {
	if identity.ID == "" {
		identity.ID = "usr-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	identity.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	identity.UpdatedAt = identity.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, role_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		identity.ID, identity.Email, identity.PasswordHash, identity.RoleID, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("creating identity: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *SQLiteIdentityRepository) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	return r.getIdentity(ctx,
		"SELECT "+identityColumns+" FROM users WHERE email = ?", email)
}

// GetByID retrieves an account by its unique ID.
func (r *SQLiteIdentityRepository) GetByID(ctx context.Context, id string) (*Identity, error) {
	return r.getIdentity(ctx,
		"SELECT "+identityColumns+" FROM users WHERE id = ?", id)
}

// List returns all accounts ordered by creation date.
func (r *SQLiteIdentityRepository) List(ctx context.Context) ([]Identity, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+identityColumns+" FROM users ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("listing identities: %w", err)
	}
	defer rows.Close()

	var identities []Identity
	for rows.Next() {
		id, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		identities = append(identities, *id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating identities: %w", err)
	}

	if identities == nil {
		identities = []Identity{}
	}
	return identities, nil
}

// Update modifies an account's mutable fields (email, role_id). The
// password hash is updated through UpdatePassword.
func (r *SQLiteIdentityRepository) Update(ctx context.Context, identity *Identity) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET email = ?, role_id = ?, updated_at = ? WHERE id = ?",
		identity.Email, identity.RoleID, now, identity.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("updating identity: %w", err)
	}

	return requireRowAffected(result, "updating")
}

// UpdatePassword replaces an account's password hash.
func (r *SQLiteIdentityRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, now, id,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return requireRowAffected(result, "updating password for")
}

// Delete removes an account permanently.
func (r *SQLiteIdentityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting identity: %w", err)
	}

	return requireRowAffected(result, "deleting")
}

// Count returns the total number of registered accounts.
func (r *SQLiteIdentityRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting identities: %w", err)
	}
	return count, nil
}

func (r *SQLiteIdentityRepository) getIdentity(ctx context.Context, query string, arg any) (*Identity, error) {
	var (
		identity  Identity
		createdAt string
		updatedAt string
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&identity.ID, &identity.Email, &identity.PasswordHash,
		&identity.RoleID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("getting identity: %w", err)
	}

	identity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // stored format is controlled
	identity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // stored format is controlled
	return &identity, nil
}

func scanIdentity(rows *sql.Rows) (*Identity, error) {
	var (
		identity  Identity
		createdAt string
		updatedAt string
	)

	if err := rows.Scan(
		&identity.ID, &identity.Email, &identity.PasswordHash,
		&identity.RoleID, &createdAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning identity: %w", err)
	}

	identity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // stored format is controlled
	identity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // stored format is controlled
	return &identity, nil
}

// requireRowAffected maps a zero-row UPDATE or DELETE to ErrIdentityNotFound.
func requireRowAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s identity: %w", op, err)
	}
	if affected == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "unique constraint"))
}
