package rooms

import "time"

// Room is a bookable meeting room.
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	SortOrder int    `json:"sort_order"`
}

// Booking is a half-open interval [Start, End) held by a user on a
// room. Two bookings overlap when one starts before the other ends;
// a booking that starts exactly when another ends does not conflict.
type Booking struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Username  string    `json:"username"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"created_at"`
}

// Duration returns the booking length.
func (b *Booking) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Overlaps reports whether b conflicts with the half-open interval
// [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// RoomStatus describes a room at a moment in time.
type RoomStatus struct {
	Room    Room     `json:"room"`
	Busy    bool     `json:"busy"`
	Current *Booking `json:"current,omitempty"`
	Next    *Booking `json:"next,omitempty"`
}
