package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
)

// ─── Request/Response Types ────────────────────────────────────────

// wellnessCheckinRequest is the request body for POST /wellness/checkin.
// All scores are on a 1-10 scale.
type wellnessCheckinRequest struct {
	Mood   int `json:"mood"`
	Energy int `json:"energy"`
	Stress int `json:"stress"`
}

// ─── Handlers ──────────────────────────────────────────────────────

// handleWellnessCheckIn records the caller's mood, energy, and stress
// scores and returns threshold-based advice.
func (s *Server) handleWellnessCheckIn(w http.ResponseWriter, r *http.Request) {
	if s.wellness == nil {
		writeNotFound(w, "wellness service not configured")
		return
	}

	var req wellnessCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	claims := claimsFrom(r.Context())
	checkin, err := s.wellness.CheckIn(r.Context(), claims.Username, req.Mood, req.Energy, req.Stress)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkin)
}

// handleWellnessHistory returns the caller's recent check-ins, newest
// first. Optional "limit" query parameter, default 30.
func (s *Server) handleWellnessHistory(w http.ResponseWriter, r *http.Request) {
	if s.wellness == nil {
		writeNotFound(w, "wellness service not configured")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	claims := claimsFrom(r.Context())
	history, err := s.wellness.History(r.Context(), claims.Username, limit)
	if err != nil {
		s.logger.Error("wellness history failed", "error", err)
		writeInternalError(w, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"checkins": history,
		"count":    len(history),
	})
}

// handleAirQuality returns a simulated air-quality reading. Temperature
// comes from the climate state; CO2 and humidity are simulated until
// real sensors are wired in.
func (s *Server) handleAirQuality(w http.ResponseWriter, _ *http.Request) {
	temperature := 21
	if s.climate != nil {
		temperature = s.climate.State().Temperature
	}

	co2 := 400 + rand.Intn(601)
	humidity := 40 + rand.Intn(31)

	status := "Good"
	if co2 > 800 {
		status = "Poor - High CO2 levels"
	}
	if temperature > 25 {
		status = "Too hot"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"co2":         co2,
		"temperature": temperature,
		"humidity":    humidity,
		"status":      status,
	})
}

// handleNoiseLevels returns a simulated noise reading in dB.
func (s *Server) handleNoiseLevels(w http.ResponseWriter, _ *http.Request) {
	level := 30 + rand.Intn(51)

	var status string
	switch {
	case level < 50:
		status = "Quiet - Good for work"
	case level < 70:
		status = "Moderate"
	default:
		status = "Too noisy!"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"noise_db": level,
		"status":   status,
	})
}
