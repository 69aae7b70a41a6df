package automation

import "errors"

// Domain errors for the automation package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, automation.ErrRuleNotFound) {
//	    // handle not found case
//	}
var (
	// ErrRuleNotFound is returned when a rule ID does not exist.
	ErrRuleNotFound = errors.New("rule: not found")

	// ErrInvalidTrigger is returned when a trigger type is unknown.
	ErrInvalidTrigger = errors.New("rule: invalid trigger")

	// ErrInvalidCondition is returned when the condition does not carry
	// the field the trigger type requires, or carries extra fields.
	ErrInvalidCondition = errors.New("rule: invalid condition")

	// ErrInvalidAction is returned when an action type is unknown.
	ErrInvalidAction = errors.New("rule: invalid action")

	// ErrInvalidParams is returned when the action parameters do not
	// match the action type.
	ErrInvalidParams = errors.New("rule: invalid action params")
)
