package api

import (
	"net/http"
	"strconv"

	"github.com/officegrid/officegrid-core/internal/audit"
)

// recordAudit writes an admin action to the audit trail. Failures are
// logged and swallowed; the action itself has already committed.
func (s *Server) recordAudit(r *http.Request, action, entity, detail string) {
	if s.audit == nil {
		return
	}

	actor := ""
	if claims := claimsFrom(r.Context()); claims != nil {
		actor = claims.Username
	}

	if err := s.audit.Record(r.Context(), actor, action, entity, detail); err != nil {
		s.logger.Warn("audit record failed", "action", action, "error", err)
	}
}

// handleListAudit returns the audit trail, newest first. Admin only.
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeNotFound(w, "audit trail not configured")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Actor:  q.Get("actor"),
		Action: q.Get("action"),
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			writeBadRequest(w, "offset must be a non-negative integer")
			return
		}
		filter.Offset = offset
	}

	result, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("list audit entries failed", "error", err)
		writeInternalError(w, "failed to list audit entries")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
