// Package rooms manages meeting room bookings.
//
// A booking holds a room for a half-open interval [start, end), so a
// meeting ending at 10:00 never conflicts with one starting at 10:00.
// The Scheduler serialises the conflict check and insert, rejects
// overlapping intervals with ErrBookingConflict, and enforces a
// configurable maximum booking length.
package rooms
