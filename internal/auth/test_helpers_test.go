package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the users table applied.
// The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// Use a temp file so WAL mode works (in-memory doesn't support it)
	f, err := os.CreateTemp("", "auth-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role_id INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying users migration: %v", err)
	}

	return db
}

// seedTestIdentity inserts a test account with the given password and returns it.
func seedTestIdentity(t *testing.T, db *sql.DB, email, password string) *Identity {
	t.Helper()

	hash, err := HashPassword(password, DefaultBcryptCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	repo := NewIdentityRepository(db)
	identity := &Identity{
		Email:        email,
		PasswordHash: hash,
		RoleID:       1,
	}
	if err := repo.Create(context.Background(), identity); err != nil {
		t.Fatalf("creating test identity %s: %v", email, err)
	}
	return identity
}
