package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/officegrid/officegrid-core/internal/auth"
	"github.com/officegrid/officegrid-core/internal/metrics"
	"github.com/officegrid/officegrid-core/internal/rooms"
)

// ─── Request/Response Types ────────────────────────────────────────

// bookRequest is the request body for POST /rooms/{id}/book.
// Times are RFC 3339; the booking holds the half-open interval
// [start, end).
type bookRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ─── Handlers ──────────────────────────────────────────────────────

// handleListRooms returns every bookable room.
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	list, err := s.rooms.ListRooms(r.Context())
	if err != nil {
		s.logger.Error("list rooms failed", "error", err)
		writeInternalError(w, "failed to list rooms")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rooms": list,
		"count": len(list),
	})
}

// handleRoomStatus returns whether a room is busy right now, plus its
// current and next booking.
func (s *Server) handleRoomStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	status, err := s.rooms.Status(r.Context(), id, time.Now())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// handleWeekSchedule returns a room's bookings for the calendar week
// containing the given date (query parameter "date", RFC 3339 or
// 2006-01-02; defaults to today).
func (s *Server) handleWeekSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	at := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			writeBadRequest(w, "date must be RFC 3339 or YYYY-MM-DD")
			return
		}
		at = parsed
	}

	bookings, err := s.rooms.WeekSchedule(r.Context(), id, at)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"room_id":    id,
		"week_start": rooms.WeekStart(at),
		"bookings":   bookings,
		"count":      len(bookings),
	})
}

// handleWeekOverview returns the bookings of every room for the
// calendar week containing the given date, for the whole-office week
// view. Same "date" query parameter as handleWeekSchedule.
func (s *Server) handleWeekOverview(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			writeBadRequest(w, "date must be RFC 3339 or YYYY-MM-DD")
			return
		}
		at = parsed
	}

	bookings, err := s.rooms.WeekOverview(r.Context(), at)
	if err != nil {
		s.logger.Error("week overview failed", "error", err)
		writeInternalError(w, "failed to load week overview")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"week_start": rooms.WeekStart(at),
		"bookings":   bookings,
		"count":      len(bookings),
	})
}

// handleBook creates a booking for the caller.
func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	claims := claimsFrom(r.Context())
	booking, err := s.rooms.Book(r.Context(), roomID, claims.Username, req.Start, req.End)
	if err != nil {
		metrics.IncBookingRejected()
		s.writeDomainError(w, err)
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, booking)
}

// handleCancelBooking removes a booking. Users can cancel their own
// bookings; admins can cancel anyone's.
func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims := claimsFrom(r.Context())

	var err error
	if claims.Role == auth.RoleAdmin {
		err = s.rooms.ForceCancel(r.Context(), id)
	} else {
		err = s.rooms.Cancel(r.Context(), id, claims.Username)
	}
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cancelled": id,
	})
}

// handleMyBookings returns the caller's current and upcoming bookings.
func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	bookings, err := s.rooms.UserBookings(r.Context(), claims.Username, time.Now())
	if err != nil {
		s.logger.Error("list user bookings failed", "error", err)
		writeInternalError(w, "failed to list bookings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// parseDate accepts RFC 3339 timestamps or bare dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
