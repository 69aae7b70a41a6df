package energy

import "time"

// Savings holds the cumulative energy savings attributed to automation
// actions. Counters only grow.
type Savings struct {
	HVACRuntimeReducedHours float64   `json:"hvac_runtime_reduced_hours"`
	LightsOffHours          float64   `json:"lights_off_hours"`
	UpdatedAt               time.Time `json:"updated_at"`
}
