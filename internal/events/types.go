package events

import (
	"strconv"
	"time"
)

// Type identifies a kind of facility event. The set matches the trigger
// types the automation rule engine understands.
type Type string

const (
	// TypeMotion is emitted by motion sensor proxies. Payload: area.
	TypeMotion Type = "motion"

	// TypeUserLogin is emitted on successful authentication. Payload: username.
	TypeUserLogin Type = "user_login"

	// TypeParkingCheckin is emitted when a user checks into a parking
	// spot. Payload: spot_id, user.
	TypeParkingCheckin Type = "parking_checkin"

	// TypeTime is emitted by the minute scheduler. Payload: at (HH:MM).
	TypeTime Type = "time"
)

// KnownTypes returns all valid facility event types.
func KnownTypes() []Type {
	return []Type{TypeMotion, TypeUserLogin, TypeParkingCheckin, TypeTime}
}

// IsKnownType returns true if t is a recognised facility event type.
func IsKnownType(t Type) bool {
	for _, k := range KnownTypes() {
		if t == k {
			return true
		}
	}
	return false
}

// Event is a transient facility event. Events are consumed by the rule
// engine during dispatch and never persisted.
type Event struct {
	Type      Type              `json:"type"`
	Payload   map[string]string `json:"payload,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// New creates an event of the given type with a UTC timestamp.
func New(t Type, payload map[string]string) Event {
	return Event{
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Motion builds a motion event for the given area.
func Motion(area string) Event {
	return New(TypeMotion, map[string]string{"area": area})
}

// UserLogin builds a login event for the given username.
func UserLogin(username string) Event {
	return New(TypeUserLogin, map[string]string{"username": username})
}

// ParkingCheckin builds a check-in event for the given spot and user.
func ParkingCheckin(spotID int, user string) Event {
	return New(TypeParkingCheckin, map[string]string{
		"spot_id": strconv.Itoa(spotID),
		"user":    user,
	})
}

// Tick builds a time event for the given wall-clock minute (HH:MM).
func Tick(at string) Event {
	return New(TypeTime, map[string]string{"at": at})
}
