package api

import (
	"encoding/json"
	"net/http"

	"github.com/officegrid/officegrid-core/internal/climate"
)

// ─── Request/Response Types ────────────────────────────────────────

type setTemperatureRequest struct {
	Temperature int `json:"temperature"`
}

type setModeRequest struct {
	Mode climate.Mode `json:"mode"`
}

type setLightsRequest struct {
	On bool `json:"on"`
}

// ─── Handlers ──────────────────────────────────────────────────────

// handleClimateState returns the office-wide climate and lighting state.
func (s *Server) handleClimateState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.climate.State())
}

// handleSetTemperature changes the HVAC temperature setpoint.
func (s *Server) handleSetTemperature(w http.ResponseWriter, r *http.Request) {
	var req setTemperatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	state, err := s.climate.SetTemperature(r.Context(), req.Temperature)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// handleSetMode changes the HVAC operating mode.
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	state, err := s.climate.SetMode(r.Context(), req.Mode)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// handleSetLights turns the office lights on or off.
func (s *Server) handleSetLights(w http.ResponseWriter, r *http.Request) {
	var req setLightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	state, err := s.climate.SetLights(r.Context(), req.On)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}
