package wellness

import "time"

// Score bounds for check-in inputs.
const (
	MinScore = 1
	MaxScore = 10
)

// Advice thresholds.
const (
	highStressThreshold = 7 // advice above this
	lowEnergyThreshold  = 4 // advice below this
	lowMoodThreshold    = 5 // advice below this
)

// Checkin records one daily wellness check-in.
type Checkin struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Mood      int       `json:"mood"`
	Energy    int       `json:"energy"`
	Stress    int       `json:"stress"`
	Advice    []string  `json:"advice"`
	CreatedAt time.Time `json:"created_at"`
}

// adviceFor returns threshold-based suggestions for the given scores.
func adviceFor(mood, energy, stress int) []string {
	advice := []string{}
	if stress > highStressThreshold {
		advice = append(advice, "Take a break!")
	}
	if energy < lowEnergyThreshold {
		advice = append(advice, "Drink coffee or go for a walk")
	}
	if mood < lowMoodThreshold {
		advice = append(advice, "Talk to a friend")
	}
	return advice
}
