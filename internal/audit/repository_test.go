package audit

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "audit-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE audit_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			remote_addr TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		) STRICT;
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying audit migration: %v", err)
	}

	return db
}

func TestRepository_CreateAndList(t *testing.T) {
	repo := NewSQLiteRepository(testDB(t))
	ctx := context.Background()

	entry := &Entry{
		Action:     ActionLogin,
		Email:      "budi@kantorku.id",
		RemoteAddr: "10.0.0.7",
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.ID == 0 {
		t.Error("Create() should populate the ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("Create() should stamp CreatedAt")
	}

	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("List() total = %d, entries = %d, want 1 and 1", result.Total, len(result.Entries))
	}
	got := result.Entries[0]
	if got.Action != ActionLogin || got.Email != "budi@kantorku.id" || got.RemoteAddr != "10.0.0.7" {
		t.Errorf("List() entry = %+v", got)
	}
}

func TestRepository_ListFilters(t *testing.T) {
	repo := NewSQLiteRepository(testDB(t))
	ctx := context.Background()

	seed := []Entry{
		{Action: ActionRegister, Email: "a@kantorku.id"},
		{Action: ActionLogin, Email: "a@kantorku.id"},
		{Action: ActionLogin, Email: "b@kantorku.id"},
		{Action: ActionLoginFailed, Email: "b@kantorku.id"},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seeding entry %d: %v", i, err)
		}
	}

	byAction, err := repo.List(ctx, Filter{Action: ActionLogin})
	if err != nil {
		t.Fatalf("List(action) error = %v", err)
	}
	if byAction.Total != 2 {
		t.Errorf("List(action=login) total = %d, want 2", byAction.Total)
	}

	byEmail, err := repo.List(ctx, Filter{Email: "b@kantorku.id"})
	if err != nil {
		t.Fatalf("List(email) error = %v", err)
	}
	if byEmail.Total != 2 {
		t.Errorf("List(email=b) total = %d, want 2", byEmail.Total)
	}

	both, err := repo.List(ctx, Filter{Action: ActionLogin, Email: "b@kantorku.id"})
	if err != nil {
		t.Fatalf("List(both) error = %v", err)
	}
	if both.Total != 1 {
		t.Errorf("List(action+email) total = %d, want 1", both.Total)
	}
}

func TestRepository_ListPagination(t *testing.T) {
	repo := NewSQLiteRepository(testDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		entry := &Entry{Action: ActionLogin, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("seeding entry %d: %v", i, err)
		}
	}

	page, err := repo.List(ctx, Filter{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 5 || len(page.Entries) != 2 {
		t.Fatalf("page total = %d, entries = %d, want 5 and 2", page.Total, len(page.Entries))
	}

	// Most recent first
	if !page.Entries[0].CreatedAt.After(page.Entries[1].CreatedAt) {
		t.Error("entries should be ordered most recent first")
	}

	last, err := repo.List(ctx, Filter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(last.Entries) != 1 {
		t.Errorf("final page entries = %d, want 1", len(last.Entries))
	}
}
