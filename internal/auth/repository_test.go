package auth

import (
	"context"
	"errors"
	"testing"
)

func TestIdentityRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	identity := &Identity{
		Email:        "budi@kantorku.id",
		PasswordHash: "hash",
		RoleID:       1,
	}
	if err := repo.Create(ctx, identity); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if identity.ID == "" {
		t.Error("Create() should generate an ID")
	}

	got, err := repo.GetByEmail(ctx, "budi@kantorku.id")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != identity.ID || got.Email != identity.Email {
		t.Errorf("GetByEmail() = %+v, want %+v", got, identity)
	}
	if got.PasswordHash != "hash" {
		t.Errorf("GetByEmail() hash = %q, want %q", got.PasswordHash, "hash")
	}

	byID, err := repo.GetByID(ctx, identity.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Email != identity.Email {
		t.Errorf("GetByID() email = %q, want %q", byID.Email, identity.Email)
	}
}

func TestIdentityRepository_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	first := &Identity{Email: "budi@kantorku.id", PasswordHash: "h1", RoleID: 1}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	second := &Identity{Email: "budi@kantorku.id", PasswordHash: "h2", RoleID: 1}
	if err := repo.Create(ctx, second); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate Create() error = %v, want ErrEmailExists", err)
	}
}

func TestIdentityRepository_NotFound(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "nobody@kantorku.id"); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrIdentityNotFound", err)
	}
	if _, err := repo.GetByID(ctx, "usr-missing"); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("GetByID() error = %v, want ErrIdentityNotFound", err)
	}
	if err := repo.Delete(ctx, "usr-missing"); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("Delete() error = %v, want ErrIdentityNotFound", err)
	}
	if err := repo.Update(ctx, &Identity{ID: "usr-missing", Email: "x@y.zz"}); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("Update() error = %v, want ErrIdentityNotFound", err)
	}
}

func TestIdentityRepository_Update(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	identity := seedTestIdentity(t, db, "budi@kantorku.id", "password")

	identity.Email = "budi.baru@kantorku.id"
	identity.RoleID = 2
	if err := repo.Update(ctx, identity); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, identity.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "budi.baru@kantorku.id" || got.RoleID != 2 {
		t.Errorf("after Update() got email=%q role=%d", got.Email, got.RoleID)
	}
}

func TestIdentityRepository_UpdatePassword(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	identity := seedTestIdentity(t, db, "budi@kantorku.id", "old-password")

	if err := repo.UpdatePassword(ctx, identity.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	got, err := repo.GetByID(ctx, identity.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("hash = %q, want %q", got.PasswordHash, "new-hash")
	}
}

func TestIdentityRepository_ListAndCount(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() on empty table error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() on empty table = %d entries, want 0", len(list))
	}

	seedTestIdentity(t, db, "a@kantorku.id", "pw")
	seedTestIdentity(t, db, "b@kantorku.id", "pw")

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("List() = %d entries, want 2", len(list))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestIdentityRepository_Delete(t *testing.T) {
	db := testDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	identity := seedTestIdentity(t, db, "budi@kantorku.id", "password")

	if err := repo.Delete(ctx, identity.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, identity.ID); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrIdentityNotFound", err)
	}
}
