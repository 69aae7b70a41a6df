package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/officegrid/officegrid-core/internal/metrics"
	"github.com/officegrid/officegrid-core/internal/parking"
)

// guestUsername is the fixed account that guest passes are issued to.
const guestUsername = "guest"

// ─── Request/Response Types ────────────────────────────────────────

// spotRequest is the request body for parking transition endpoints.
type spotRequest struct {
	SpotID int `json:"spot_id"`
}

// violationEntry describes a spot whose stored state is internally
// inconsistent. The state machine cannot produce these; they only
// appear if storage was modified outside the application.
type violationEntry struct {
	Spot   parking.Spot `json:"spot"`
	Reason string       `json:"reason"`
}

// ─── Handlers ──────────────────────────────────────────────────────

// handleListSpots returns every parking spot in ID order.
func (s *Server) handleListSpots(w http.ResponseWriter, _ *http.Request) {
	spots := s.parking.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"spots": spots,
		"count": len(spots),
	})
}

// handleAvailableSpots returns the spots currently free to reserve.
func (s *Server) handleAvailableSpots(w http.ResponseWriter, _ *http.Request) {
	available := make([]parking.Spot, 0)
	for _, spot := range s.parking.List() {
		if spot.Status == parking.StatusAvailable {
			available = append(available, spot)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"spots": available,
		"count": len(available),
	})
}

// handleParkingStats returns spot counts per status.
func (s *Server) handleParkingStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.parking.Stats())
}

// handleMyReservations returns the spots held by the caller.
func (s *Server) handleMyReservations(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	spots := s.parking.ListByUser(claims.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"spots": spots,
		"count": len(spots),
	})
}

// handleReserve reserves an available spot for the caller.
func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	s.spotTransition(w, r, "reserve", func(id int, username string) (*parking.Spot, error) {
		return s.parking.Reserve(r.Context(), id, username)
	})
}

// handleGuestPass reserves an available spot on behalf of the fixed
// guest account. Any authenticated user may issue a guest pass.
func (s *Server) handleGuestPass(w http.ResponseWriter, r *http.Request) {
	var req spotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	spot, err := s.parking.Reserve(r.Context(), req.SpotID, guestUsername)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	metrics.IncParkingTransition("reserve")
	claims := claimsFrom(r.Context())
	s.logger.Info("guest pass issued", "spot_id", spot.ID, "issued_by", claims.Username)
	writeJSON(w, http.StatusOK, spot)
}

// handleCheckIn marks the caller as physically present at a spot.
// Checking into an available spot is a walk-up: it claims the spot
// directly without a prior reservation.
func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	s.spotTransition(w, r, "checkin", func(id int, username string) (*parking.Spot, error) {
		return s.parking.CheckIn(r.Context(), id, username)
	})
}

// handleUnreserve releases a reserved spot held by the caller.
func (s *Server) handleUnreserve(w http.ResponseWriter, r *http.Request) {
	s.spotTransition(w, r, "unreserve", func(id int, username string) (*parking.Spot, error) {
		return s.parking.Unreserve(r.Context(), id, username)
	})
}

// handleCheckOut releases an occupied spot held by the caller.
func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	s.spotTransition(w, r, "checkout", func(id int, username string) (*parking.Spot, error) {
		return s.parking.CheckOut(r.Context(), id, username)
	})
}

// handleClearSpot force-releases a spot regardless of owner. Admin only.
func (s *Server) handleClearSpot(w http.ResponseWriter, r *http.Request) {
	var req spotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	spot, err := s.parking.Clear(r.Context(), req.SpotID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	metrics.IncParkingTransition("clear")
	claims := claimsFrom(r.Context())
	s.recordAudit(r, "parking_cleared", "spot", strconv.Itoa(spot.ID))
	s.logger.Info("parking spot cleared", "spot_id", spot.ID, "cleared_by", claims.Username)
	writeJSON(w, http.StatusOK, spot)
}

// handleViolations lists spots with internally inconsistent state:
// held without an owner, or available with one. The transition rules
// keep owner and status in lockstep, so this is a diagnostic that
// returns an empty list unless the database was edited externally.
func (s *Server) handleViolations(w http.ResponseWriter, _ *http.Request) {
	violations := make([]violationEntry, 0)
	for _, spot := range s.parking.List() {
		switch {
		case spot.Held() && spot.Owner == "":
			violations = append(violations, violationEntry{Spot: spot, Reason: "held without owner"})
		case !spot.Held() && spot.Owner != "":
			violations = append(violations, violationEntry{Spot: spot, Reason: "available with owner"})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"violations": violations,
		"count":      len(violations),
	})
}

// spotTransition runs a caller-scoped parking transition from a
// spot_id request body.
func (s *Server) spotTransition(w http.ResponseWriter, r *http.Request, name string, transition func(id int, username string) (*parking.Spot, error)) {
	var req spotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	claims := claimsFrom(r.Context())
	spot, err := transition(req.SpotID, claims.Username)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	metrics.IncParkingTransition(name)
	writeJSON(w, http.StatusOK, spot)
}
