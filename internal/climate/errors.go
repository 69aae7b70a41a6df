package climate

import "errors"

// Package-level errors for climate operations.
// These allow callers to use errors.Is() for error handling.
var (
	// ErrTemperatureOutOfRange is returned when a setpoint falls
	// outside [MinTemperature, MaxTemperature].
	ErrTemperatureOutOfRange = errors.New("climate: temperature out of range")

	// ErrInvalidMode is returned when an HVAC mode is not heat, cool
	// or off.
	ErrInvalidMode = errors.New("climate: invalid hvac mode")

	// ErrStateNotFound is returned when the office state row is
	// missing. Migrations seed it, so this indicates a broken install.
	ErrStateNotFound = errors.New("climate: office state not found")
)
