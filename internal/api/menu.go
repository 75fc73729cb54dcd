package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/arifwid/kantorku/internal/menu"
)

// menuRequest is the body of menu create and update calls.
type menuRequest struct {
	ID         int64  `json:"id,omitempty"`
	Nama       string `json:"nama"`
	Harga      int64  `json:"harga"`
	KategoriID int64  `json:"kategori_id"`
}

func (req *menuRequest) validate() string {
	if req.Nama == "" {
		return "nama is required"
	}
	if req.Harga < 0 {
		return "harga must not be negative"
	}
	if req.KategoriID < 1 {
		return "kategori_id is required"
	}
	return ""
}

// handleListMenu returns all menu items.
//
// GET /menu
func (s *Server) handleListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := s.menu.List(r.Context())
	if err != nil {
		s.logger.Error("listing menu failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleListMenuWithCategory returns all menu items joined with their
// category names.
//
// GET /menu/menu-kategori
func (s *Server) handleListMenuWithCategory(w http.ResponseWriter, r *http.Request) {
	items, err := s.menu.ListWithCategory(r.Context())
	if err != nil {
		s.logger.Error("listing menu with categories failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleListCategories returns the category lookup table.
//
// GET /menu/kategori
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.menu.ListCategories(r.Context())
	if err != nil {
		s.logger.Error("listing categories failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// handleMenuLastID returns the highest menu item ID.
//
// GET /menu/last-id
func (s *Server) handleMenuLastID(w http.ResponseWriter, r *http.Request) {
	last, err := s.menu.LastID(r.Context())
	if err != nil {
		s.logger.Error("getting last menu ID failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"last_id": last})
}

// handleGetMenu returns a single menu item.
//
// GET /menu/{id}
func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	item, err := s.menu.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			writeNotFound(w, "menu item not found")
			return
		}
		s.logger.Error("getting menu item failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleCreateMenu adds a menu item.
//
// POST /menu
func (s *Server) handleCreateMenu(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	item := &menu.Item{
		ID:         req.ID,
		Nama:       req.Nama,
		Harga:      req.Harga,
		KategoriID: req.KategoriID,
	}
	if err := s.menu.Create(r.Context(), item); err != nil {
		if errors.Is(err, menu.ErrItemExists) {
			writeBadRequest(w, "menu item already exists")
			return
		}
		s.logger.Error("creating menu item failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// handleUpdateMenu modifies a menu item.
//
// PUT /menu/{id}
func (s *Server) handleUpdateMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	item := &menu.Item{
		ID:         id,
		Nama:       req.Nama,
		Harga:      req.Harga,
		KategoriID: req.KategoriID,
	}
	if err := s.menu.Update(r.Context(), item); err != nil {
		switch {
		case errors.Is(err, menu.ErrItemNotFound):
			writeNotFound(w, "menu item not found")
		case errors.Is(err, menu.ErrItemExists):
			writeBadRequest(w, "menu item name already taken")
		default:
			s.logger.Error("updating menu item failed", "error", err)
			writeInternalError(w, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// handleDeleteMenu removes a menu item.
//
// DELETE /menu/{id}
func (s *Server) handleDeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := s.menu.Delete(r.Context(), id); err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			writeNotFound(w, "menu item not found")
			return
		}
		s.logger.Error("deleting menu item failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"})
}

// parseIDParam reads the {id} route parameter as an integer, writing a
// 400 response on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeBadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}
