package parking

import "errors"

// Package-level errors for parking operations.
// These allow callers to use errors.Is() for error handling.
var (
	// ErrSpotNotFound is returned when a spot ID does not exist.
	ErrSpotNotFound = errors.New("parking: spot not found")

	// ErrSpotUnavailable is returned when a transition requires an
	// available spot but the spot is reserved or occupied.
	ErrSpotUnavailable = errors.New("parking: spot unavailable")

	// ErrNotOwner is returned when a user acts on a spot held by
	// someone else.
	ErrNotOwner = errors.New("parking: not spot owner")

	// ErrSpotNotHeld is returned when releasing or checking into a spot
	// that is not in a state the operation accepts.
	ErrSpotNotHeld = errors.New("parking: spot not held")

	// ErrSpotExists is returned when provisioning collides with an
	// existing spot ID.
	ErrSpotExists = errors.New("parking: spot already exists")
)
