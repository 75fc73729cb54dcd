package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arifwid/kantorku/internal/attendance"
)

// checkInRequest is the body of attendance check-in calls.
type checkInRequest struct {
	NIP string `json:"nip"`
}

// handleListAttendance returns attendance records, optionally filtered
// by employee.
//
// GET /absensi?nip=...
func (s *Server) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	var (
		records []attendance.Record
		err     error
	)
	if nip := r.URL.Query().Get("nip"); nip != "" {
		records, err = s.attendance.ListByNIP(r.Context(), nip)
	} else {
		records, err = s.attendance.List(r.Context())
	}
	if err != nil {
		s.logger.Error("listing attendance failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleGetAttendance returns a single attendance record.
//
// GET /absensi/{id}
func (s *Server) handleGetAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	record, err := s.attendance.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			writeNotFound(w, "attendance record not found")
			return
		}
		s.logger.Error("getting attendance record failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleCheckIn opens today's attendance record for an employee.
//
// POST /absensi/checkin
func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.NIP == "" {
		writeBadRequest(w, "nip is required")
		return
	}

	record, err := s.attendance.CheckIn(r.Context(), req.NIP, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			writeBadRequest(w, "already checked in today")
			return
		}
		s.logger.Error("check-in failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// handleCheckOut closes an open attendance record.
//
// PUT /absensi/checkout/{id}
func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	record, err := s.attendance.CheckOut(r.Context(), id, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrRecordNotFound):
			writeNotFound(w, "attendance record not found")
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			writeBadRequest(w, "already checked out")
		default:
			s.logger.Error("check-out failed", "error", err)
			writeInternalError(w, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// handleDeleteAttendance removes an attendance record.
//
// DELETE /absensi/{id}
func (s *Server) handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := s.attendance.Delete(r.Context(), id); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			writeNotFound(w, "attendance record not found")
			return
		}
		s.logger.Error("deleting attendance record failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "attendance record deleted"})
}
