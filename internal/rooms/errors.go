package rooms

import "errors"

// Package-level errors for room booking operations.
// These allow callers to use errors.Is() for error handling.
var (
	// ErrRoomNotFound is returned when a room ID does not exist.
	ErrRoomNotFound = errors.New("rooms: room not found")

	// ErrBookingNotFound is returned when a booking ID does not exist.
	ErrBookingNotFound = errors.New("rooms: booking not found")

	// ErrBookingConflict is returned when a requested interval overlaps
	// an existing booking on the same room.
	ErrBookingConflict = errors.New("rooms: booking conflict")

	// ErrInvalidInterval is returned when a booking's end does not come
	// after its start.
	ErrInvalidInterval = errors.New("rooms: invalid interval")

	// ErrBookingTooLong is returned when a booking exceeds the maximum
	// allowed duration.
	ErrBookingTooLong = errors.New("rooms: booking too long")

	// ErrNotBookingOwner is returned when a user cancels a booking held
	// by someone else.
	ErrNotBookingOwner = errors.New("rooms: not booking owner")
)
