package climate

import "time"

// Temperature setpoint bounds in degrees Celsius.
const (
	MinTemperature = 10
	MaxTemperature = 30
)

// Mode is the HVAC operating mode.
type Mode string

const (
	ModeHeat Mode = "heat"
	ModeCool Mode = "cool"
	ModeOff  Mode = "off"
)

// ValidMode returns true if m is a recognised HVAC mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModeHeat, ModeCool, ModeOff:
		return true
	}
	return false
}

// State is the office-wide climate and lighting state. A single row
// keyed by "office" backs it.
type State struct {
	Temperature int       `json:"temperature"`
	Mode        Mode      `json:"hvac_mode"`
	LightsOn    bool      `json:"lights_on"`
	UpdatedAt   time.Time `json:"updated_at"`
}
