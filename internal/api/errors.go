package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/officegrid/officegrid-core/internal/auth"
	"github.com/officegrid/officegrid-core/internal/automation"
	"github.com/officegrid/officegrid-core/internal/climate"
	"github.com/officegrid/officegrid-core/internal/energy"
	"github.com/officegrid/officegrid-core/internal/parking"
	"github.com/officegrid/officegrid-core/internal/rooms"
	"github.com/officegrid/officegrid-core/internal/wellness"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeUnauthorized = "unauthorised"
	ErrCodeForbidden    = "forbidden"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// writeForbidden writes a 403 error response.
func writeForbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, ErrCodeForbidden, message)
}

// writeConflict writes a 409 error response.
func writeConflict(w http.ResponseWriter, message string) {
	writeError(w, http.StatusConflict, ErrCodeConflict, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// notFoundErrors map to 404.
var notFoundErrors = []error{
	parking.ErrSpotNotFound,
	rooms.ErrRoomNotFound,
	rooms.ErrBookingNotFound,
	automation.ErrRuleNotFound,
	auth.ErrUserNotFound,
	climate.ErrStateNotFound,
	energy.ErrLedgerNotFound,
}

// conflictErrors map to 409. Duration rejections count as conflicts:
// the interval cannot be scheduled, same as an overlap.
var conflictErrors = []error{
	parking.ErrSpotUnavailable,
	parking.ErrSpotNotHeld,
	rooms.ErrBookingConflict,
	rooms.ErrInvalidInterval,
	rooms.ErrBookingTooLong,
	auth.ErrUsernameExists,
}

// forbiddenErrors map to 403.
var forbiddenErrors = []error{
	parking.ErrNotOwner,
	rooms.ErrNotBookingOwner,
	auth.ErrForbidden,
}

// badRequestErrors map to 400.
var badRequestErrors = []error{
	climate.ErrTemperatureOutOfRange,
	climate.ErrInvalidMode,
	automation.ErrInvalidTrigger,
	automation.ErrInvalidCondition,
	automation.ErrInvalidAction,
	automation.ErrInvalidParams,
	auth.ErrInvalidUsername,
	auth.ErrInvalidRole,
	auth.ErrLastAdmin,
	auth.ErrSelfDeletion,
	energy.ErrNegativeDelta,
	wellness.ErrInvalidScore,
	wellness.ErrMissingUsername,
}

// writeDomainError maps domain sentinel errors to HTTP responses.
// Unknown errors become 500 with a generic message.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			writeNotFound(w, sentinel.Error())
			return
		}
	}
	for _, sentinel := range conflictErrors {
		if errors.Is(err, sentinel) {
			writeConflict(w, sentinel.Error())
			return
		}
	}
	for _, sentinel := range forbiddenErrors {
		if errors.Is(err, sentinel) {
			writeForbidden(w, sentinel.Error())
			return
		}
	}
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			writeBadRequest(w, err.Error())
			return
		}
	}

	s.logger.Error("unhandled error in HTTP handler", "error", err)
	writeInternalError(w, "internal server error")
}
