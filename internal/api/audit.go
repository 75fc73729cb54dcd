package api

import (
	"net/http"
	"strconv"

	"github.com/arifwid/kantorku/internal/audit"
)

// handleListAudit returns audit entries, filtered and paginated via
// query parameters.
//
// GET /audit?action=...&email=...&limit=...&offset=...
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := audit.Filter{
		Action: q.Get("action"),
		Email:  q.Get("email"),
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v) //nolint:errcheck // zero falls back to the default page size
	}
	if v := q.Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v) //nolint:errcheck // zero is the first page
	}

	result, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing audit entries failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
