package automation

import (
	"strconv"
	"strings"
	"time"

	"github.com/officegrid/officegrid-core/internal/events"
)

// TriggerType identifies the facility event a rule listens for.
type TriggerType string

const (
	TriggerMotion         TriggerType = "motion"
	TriggerUserLogin      TriggerType = "user_login"
	TriggerParkingCheckin TriggerType = "parking_checkin"
	TriggerTime           TriggerType = "time"
)

// AllTriggerTypes returns all valid trigger types.
func AllTriggerTypes() []TriggerType {
	return []TriggerType{TriggerMotion, TriggerUserLogin, TriggerParkingCheckin, TriggerTime}
}

// ActionType identifies what a rule does when it fires.
type ActionType string

const (
	ActionLightsOn       ActionType = "lights_on"
	ActionLightsOff      ActionType = "lights_off"
	ActionHVACOff        ActionType = "hvac_off"
	ActionReserveParking ActionType = "reserve_parking"
	ActionClearParking   ActionType = "clear_parking"
)

// AllActionTypes returns all valid action types.
func AllActionTypes() []ActionType {
	return []ActionType{ActionLightsOn, ActionLightsOff, ActionHVACOff, ActionReserveParking, ActionClearParking}
}

// Condition is the trigger condition, a tagged variant keyed by the
// rule's trigger type. Exactly the field for that trigger is set:
// motion matches on Area, user_login on Username, parking_checkin on
// SpotID, time on At (24h HH:MM).
type Condition struct {
	Area     string `json:"area,omitempty"`
	Username string `json:"username,omitempty"`
	SpotID   int    `json:"spot_id,omitempty"`
	At       string `json:"at,omitempty"`
}

// ActionParams carries action parameters, a tagged variant keyed by the
// rule's action type. Only reserve_parking and clear_parking take a
// parameter: the target spot.
type ActionParams struct {
	SpotID int `json:"spot_id,omitempty"`
}

// Rule is an automation rule: when an event matching the trigger and
// condition is dispatched, the action runs. Rules exist until deleted
// and can be toggled inactive without losing them.
type Rule struct {
	ID          int64        `json:"id"`
	Trigger     TriggerType  `json:"trigger"`
	Condition   Condition    `json:"condition"`
	Action      ActionType   `json:"action"`
	Params      ActionParams `json:"params"`
	Active      bool         `json:"active"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Matches reports whether the rule's trigger condition matches the
// event. The trigger type must equal the event type and the condition
// field must match the corresponding payload value. Usernames compare
// case-insensitively; everything else is an exact match.
func (r *Rule) Matches(ev events.Event) bool {
	if string(r.Trigger) != string(ev.Type) {
		return false
	}
	switch r.Trigger {
	case TriggerMotion:
		return ev.Payload["area"] == r.Condition.Area
	case TriggerUserLogin:
		return strings.EqualFold(ev.Payload["username"], r.Condition.Username)
	case TriggerParkingCheckin:
		return ev.Payload["spot_id"] == strconv.Itoa(r.Condition.SpotID)
	case TriggerTime:
		return ev.Payload["at"] == r.Condition.At
	}
	return false
}

// DeepCopy creates an independent copy of the Rule. Rule has no
// reference fields today, so this is a value copy; it exists to keep
// cache isolation explicit at call sites.
func (r *Rule) DeepCopy() *Rule {
	if r == nil {
		return nil
	}
	cpy := *r
	return &cpy
}
