package wellness

import "errors"

var (
	// ErrInvalidScore is returned when a score is outside 1-10.
	ErrInvalidScore = errors.New("wellness: score must be between 1 and 10")

	// ErrMissingUsername is returned when a check-in has no username.
	ErrMissingUsername = errors.New("wellness: username required")
)
