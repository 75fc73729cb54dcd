package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arifwid/kantorku/internal/audit"
	"github.com/arifwid/kantorku/internal/auth"
)

// updateUserRequest is the body of user update calls. Passwords are not
// changed here; a password reset flow would go through registration of
// a new hash, never a plain field on this endpoint.
type updateUserRequest struct {
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

// handleListUsers returns all registered accounts. Password hashes are
// excluded by the Identity JSON encoding.
//
// GET /users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	identities, err := s.identities.List(r.Context())
	if err != nil {
		s.logger.Error("listing users failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, identities)
}

// handleUpdateUser modifies an account's email or role.
//
// PUT /users/{id}
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if !auth.IsValidEmail(req.Email) {
		writeBadRequest(w, "invalid email address")
		return
	}
	if req.RoleID < 1 {
		writeBadRequest(w, "role_id is required")
		return
	}

	identity := &auth.Identity{ID: id, Email: req.Email, RoleID: req.RoleID}
	if err := s.identities.Update(r.Context(), identity); err != nil {
		switch {
		case errors.Is(err, auth.ErrIdentityNotFound):
			writeNotFound(w, "user not found")
		case errors.Is(err, auth.ErrEmailExists):
			writeBadRequest(w, "email already registered")
		default:
			s.logger.Error("updating user failed", "error", err)
			writeInternalError(w, "internal server error")
		}
		return
	}

	s.recordAudit(r, audit.ActionUserUpdated, userEmail(r.Context()), "updated "+id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "user updated"})
}

// handleDeleteUser removes an account. Any session token the account
// already holds stays valid until expiry; deletion stops new logins.
//
// DELETE /users/{id}
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.identities.Delete(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrIdentityNotFound) {
			writeNotFound(w, "user not found")
			return
		}
		s.logger.Error("deleting user failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	s.recordAudit(r, audit.ActionUserDeleted, userEmail(r.Context()), "deleted "+id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
