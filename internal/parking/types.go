package parking

import "time"

// Status represents the lifecycle state of a parking spot.
type Status string

const (
	// StatusAvailable means the spot is free and has no owner.
	StatusAvailable Status = "available"

	// StatusReserved means the spot is held for its owner but not yet
	// physically occupied.
	StatusReserved Status = "reserved"

	// StatusOccupied means the owner has checked in at the spot.
	StatusOccupied Status = "occupied"
)

// ValidStatus returns true if s is a recognised spot status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusOccupied:
		return true
	}
	return false
}

// Spot is a single parking spot. Owner is empty exactly when the spot
// is available.
type Spot struct {
	ID        int       `json:"id"`
	Status    Status    `json:"status"`
	Owner     string    `json:"owner,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Held returns true if the spot is reserved or occupied.
func (s *Spot) Held() bool {
	return s.Status == StatusReserved || s.Status == StatusOccupied
}
