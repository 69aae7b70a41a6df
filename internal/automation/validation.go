package automation

import (
	"fmt"
	"regexp"
)

// timeOfDayPattern matches 24h wall-clock times, 00:00 through 23:59.
var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

const maxDescriptionLength = 200

// ValidateRule checks a rule's structure: a known trigger with exactly
// the condition field that trigger requires, and a known action with
// exactly the parameters that action requires.
func ValidateRule(rule *Rule) error {
	if err := validateTrigger(rule.Trigger, rule.Condition); err != nil {
		return err
	}
	if err := validateAction(rule.Action, rule.Params); err != nil {
		return err
	}
	if len(rule.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidCondition, maxDescriptionLength)
	}
	return nil
}

func validateTrigger(trigger TriggerType, cond Condition) error {
	switch trigger {
	case TriggerMotion:
		if cond.Area == "" {
			return fmt.Errorf("%w: motion trigger requires area", ErrInvalidCondition)
		}
		if cond.Username != "" || cond.SpotID != 0 || cond.At != "" {
			return fmt.Errorf("%w: motion trigger takes only area", ErrInvalidCondition)
		}
	case TriggerUserLogin:
		if cond.Username == "" {
			return fmt.Errorf("%w: user_login trigger requires username", ErrInvalidCondition)
		}
		if cond.Area != "" || cond.SpotID != 0 || cond.At != "" {
			return fmt.Errorf("%w: user_login trigger takes only username", ErrInvalidCondition)
		}
	case TriggerParkingCheckin:
		if cond.SpotID < 1 {
			return fmt.Errorf("%w: parking_checkin trigger requires spot_id >= 1", ErrInvalidCondition)
		}
		if cond.Area != "" || cond.Username != "" || cond.At != "" {
			return fmt.Errorf("%w: parking_checkin trigger takes only spot_id", ErrInvalidCondition)
		}
	case TriggerTime:
		if !timeOfDayPattern.MatchString(cond.At) {
			return fmt.Errorf("%w: time trigger requires at in HH:MM form", ErrInvalidCondition)
		}
		if cond.Area != "" || cond.Username != "" || cond.SpotID != 0 {
			return fmt.Errorf("%w: time trigger takes only at", ErrInvalidCondition)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTrigger, trigger)
	}
	return nil
}

func validateAction(action ActionType, params ActionParams) error {
	switch action {
	case ActionLightsOn, ActionLightsOff, ActionHVACOff:
		if params.SpotID != 0 {
			return fmt.Errorf("%w: %s takes no parameters", ErrInvalidParams, action)
		}
	case ActionReserveParking, ActionClearParking:
		if params.SpotID < 1 {
			return fmt.Errorf("%w: %s requires spot_id >= 1", ErrInvalidParams, action)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	return nil
}
