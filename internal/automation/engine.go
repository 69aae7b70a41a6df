package automation

import (
	"context"
	"fmt"

	"github.com/officegrid/officegrid-core/internal/events"
)

// ClimateControl is the interface the engine needs from the climate
// package to run lighting and HVAC actions.
type ClimateControl interface {
	SetLights(ctx context.Context, on bool) error
	HVACOff(ctx context.Context) error
}

// ParkingControl is the interface the engine needs from the parking
// package to run parking actions.
type ParkingControl interface {
	Reserve(ctx context.Context, spotID int, owner string) error
	Clear(ctx context.Context, spotID int) error
}

// SavingsLedger credits energy savings for automation actions.
type SavingsLedger interface {
	AddHVACRuntimeReduced(ctx context.Context, hours float64) error
	AddLightsOff(ctx context.Context, hours float64) error
}

// Metrics counts engine activity. The prometheus adapter satisfies
// this; nil disables counting.
type Metrics interface {
	EventDispatched(eventType string)
	RuleFired(trigger, action string)
	ActionFailed(action string)
}

// Savings credited per automation action, measured against an
// always-on baseline where HVAC and lighting run for the full hour the
// action covers.
const (
	hvacOffSavedHours   = 1.0
	lightsOffSavedHours = 1.0
)

// systemActor is the owner recorded for parking spots reserved by a
// rule when the triggering event names no user.
const systemActor = "automation"

// Engine dispatches facility events against the rule registry and
// executes the actions of matching rules.
//
// Rules are evaluated in creation order. One rule's action failure is
// logged and never aborts dispatch of the remaining matching rules.
//
// Thread Safety: HandleEvent and TestRule are safe for concurrent use.
type Engine struct {
	registry *Registry
	climate  ClimateControl
	parking  ParkingControl
	savings  SavingsLedger
	metrics  Metrics
	logger   Logger
}

// NewEngine creates a rule engine.
//
// Parameters:
//   - registry: rule registry for loading rule definitions
//   - climate: climate controller for lighting/HVAC actions
//   - parking: parking machine for reserve/clear actions
//   - savings: energy ledger credited by lights_off and hvac_off
//   - metrics: dispatch counters (may be nil)
//   - logger: logger instance (may be nil)
func NewEngine(registry *Registry, climate ClimateControl, parking ParkingControl, savings SavingsLedger, metrics Metrics, logger Logger) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Engine{
		registry: registry,
		climate:  climate,
		parking:  parking,
		savings:  savings,
		metrics:  metrics,
		logger:   logger,
	}
}

// HandleEvent dispatches an event: every active rule whose trigger and
// condition match runs its action, in creation order. Returns the
// number of rules fired.
func (e *Engine) HandleEvent(ctx context.Context, ev events.Event) int {
	if e.metrics != nil {
		e.metrics.EventDispatched(string(ev.Type))
	}

	rules, err := e.registry.ListRules(ctx)
	if err != nil {
		e.logger.Error("listing rules for dispatch", "error", err)
		return 0
	}

	fired := 0
	for i := range rules {
		rule := rules[i]
		if !rule.Active || !rule.Matches(ev) {
			continue
		}

		if err := e.execute(ctx, &rule, ev); err != nil {
			// Non-fatal: log and continue with remaining rules.
			e.logger.Warn("rule action failed",
				"rule_id", rule.ID,
				"action", rule.Action,
				"error", err,
			)
			if e.metrics != nil {
				e.metrics.ActionFailed(string(rule.Action))
			}
			continue
		}

		fired++
		if e.metrics != nil {
			e.metrics.RuleFired(string(rule.Trigger), string(rule.Action))
		}
		e.logger.Info("rule fired",
			"rule_id", rule.ID,
			"trigger", rule.Trigger,
			"action", rule.Action,
			"event", ev.Type,
		)
	}

	if fired > 0 {
		e.logger.Debug("event dispatch complete", "event", ev.Type, "fired", fired)
	}
	return fired
}

// TestRule runs a rule's action directly, bypassing the trigger match
// and the active flag. No facility event is synthesised, so other
// rules never fire as a side effect.
func (e *Engine) TestRule(ctx context.Context, id int64) (*Rule, error) {
	rule, err := e.registry.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.execute(ctx, rule, events.Event{}); err != nil {
		return nil, fmt.Errorf("executing action: %w", err)
	}

	e.logger.Info("rule tested", "rule_id", id, "action", rule.Action)
	return rule, nil
}

func (e *Engine) execute(ctx context.Context, rule *Rule, ev events.Event) error {
	switch rule.Action {
	case ActionLightsOn:
		return e.climate.SetLights(ctx, true)

	case ActionLightsOff:
		if err := e.climate.SetLights(ctx, false); err != nil {
			return err
		}
		if e.savings != nil {
			e.credit(ctx, rule, e.savings.AddLightsOff, lightsOffSavedHours)
		}
		return nil

	case ActionHVACOff:
		if err := e.climate.HVACOff(ctx); err != nil {
			return err
		}
		if e.savings != nil {
			e.credit(ctx, rule, e.savings.AddHVACRuntimeReduced, hvacOffSavedHours)
		}
		return nil

	case ActionReserveParking:
		owner := ev.Payload["username"]
		if owner == "" {
			owner = ev.Payload["user"]
		}
		if owner == "" {
			owner = systemActor
		}
		return e.parking.Reserve(ctx, rule.Params.SpotID, owner)

	case ActionClearParking:
		return e.parking.Clear(ctx, rule.Params.SpotID)
	}
	return fmt.Errorf("%w: %q", ErrInvalidAction, rule.Action)
}

// credit records energy savings for a fired action. Ledger failures
// are logged; the action itself already succeeded.
func (e *Engine) credit(ctx context.Context, rule *Rule, add func(context.Context, float64) error, hours float64) {
	if err := add(ctx, hours); err != nil {
		e.logger.Warn("crediting savings failed", "rule_id", rule.ID, "error", err)
	}
}
