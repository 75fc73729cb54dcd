package api

import (
	"net/http"
	"testing"

	"github.com/arifwid/kantorku/internal/menu"
)

func TestMenuEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	register(t, ts, "admin@kantorku.id", "rahasia123")
	cookies := login(t, ts, "admin@kantorku.id", "rahasia123")

	// Unauthenticated access is refused
	resp := doJSON(t, http.MethodGet, ts.URL+"/menu/", nil, nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list status = %d, want 401", resp.StatusCode)
	}

	// Create
	var created menu.Item
	resp = doJSON(t, http.MethodPost, ts.URL+"/menu/",
		map[string]any{"nama": "nasi goreng", "harga": 15000, "kategori_id": 1},
		cookies, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	if created.ID == 0 {
		t.Fatal("create should assign an ID")
	}

	// Validation
	resp = doJSON(t, http.MethodPost, ts.URL+"/menu/",
		map[string]any{"nama": "", "harga": 1, "kategori_id": 1}, cookies, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("create without nama status = %d, want 400", resp.StatusCode)
	}

	// List with category join
	var joined []menu.ItemWithCategory
	resp = doJSON(t, http.MethodGet, ts.URL+"/menu/menu-kategori", nil, cookies, &joined)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("menu-kategori status = %d, want 200", resp.StatusCode)
	}
	if len(joined) != 1 || joined[0].Kategori != "makanan" {
		t.Errorf("menu-kategori = %+v", joined)
	}

	// Last ID
	var lastID map[string]int64
	doJSON(t, http.MethodGet, ts.URL+"/menu/last-id", nil, cookies, &lastID)
	if lastID["last_id"] != created.ID {
		t.Errorf("last_id = %d, want %d", lastID["last_id"], created.ID)
	}

	// Update
	var updated menu.Item
	resp = doJSON(t, http.MethodPut, ts.URL+"/menu/1",
		map[string]any{"nama": "nasi goreng spesial", "harga": 18000, "kategori_id": 1},
		cookies, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	if updated.Harga != 18000 {
		t.Errorf("updated harga = %d, want 18000", updated.Harga)
	}

	// Get
	var got menu.Item
	resp = doJSON(t, http.MethodGet, ts.URL+"/menu/1", nil, cookies, &got)
	if resp.StatusCode != http.StatusOK || got.Nama != "nasi goreng spesial" {
		t.Errorf("get status = %d, item = %+v", resp.StatusCode, got)
	}

	// Delete, then 404
	resp = doJSON(t, http.MethodDelete, ts.URL+"/menu/1", nil, cookies, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, ts.URL+"/menu/1", nil, cookies, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestMenuCategories(t *testing.T) {
	_, ts := newTestServer(t)

	register(t, ts, "admin@kantorku.id", "rahasia123")
	cookies := login(t, ts, "admin@kantorku.id", "rahasia123")

	var categories []menu.Category
	resp := doJSON(t, http.MethodGet, ts.URL+"/menu/kategori", nil, cookies, &categories)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kategori status = %d, want 200", resp.StatusCode)
	}
	if len(categories) != 3 {
		t.Errorf("kategori = %d entries, want 3 seeded", len(categories))
	}
}
