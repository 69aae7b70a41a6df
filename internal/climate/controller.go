package climate

import (
	"context"
	"fmt"
	"sync"
)

// Logger is the minimal logging interface the controller requires.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Commander forwards climate changes to building hardware. The MQTT
// adapter satisfies this; commands are advisory and a send failure
// never rolls back the state change.
type Commander interface {
	SendHVAC(ctx context.Context, mode string, temperature int) error
	SendLights(ctx context.Context, on bool) error
}

// noopCommander discards all commands.
type noopCommander struct{}

func (noopCommander) SendHVAC(context.Context, string, int) error { return nil }
func (noopCommander) SendLights(context.Context, bool) error      { return nil }

// Controller owns the office-wide climate and lighting state.
//
// Mutations are validated and persisted under a lock; the hardware
// command goes out after the lock is released.
type Controller struct {
	mu        sync.RWMutex
	state     State
	repo      Repository
	commander Commander
	logger    Logger
}

// NewController creates a climate controller. Call Load before use.
// Commander and logger may be nil.
func NewController(repo Repository, commander Commander, logger Logger) *Controller {
	if commander == nil {
		commander = noopCommander{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Controller{
		repo:      repo,
		commander: commander,
		logger:    logger,
	}
}

// Load populates the cached state from the repository.
func (c *Controller) Load(ctx context.Context) error {
	state, err := c.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading office state: %w", err)
	}

	c.mu.Lock()
	c.state = *state
	c.mu.Unlock()
	return nil
}

// State returns a copy of the current office state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetTemperature updates the setpoint. The value must lie within
// [MinTemperature, MaxTemperature].
func (c *Controller) SetTemperature(ctx context.Context, temperature int) (State, error) {
	if temperature < MinTemperature || temperature > MaxTemperature {
		return State{}, ErrTemperatureOutOfRange
	}

	state, err := c.mutate(ctx, func(s *State) { s.Temperature = temperature })
	if err != nil {
		return State{}, err
	}

	c.logger.Info("temperature set", "temperature", temperature)
	c.sendHVAC(ctx, state)
	return state, nil
}

// SetMode updates the HVAC operating mode.
func (c *Controller) SetMode(ctx context.Context, mode Mode) (State, error) {
	if !ValidMode(mode) {
		return State{}, ErrInvalidMode
	}

	state, err := c.mutate(ctx, func(s *State) { s.Mode = mode })
	if err != nil {
		return State{}, err
	}

	c.logger.Info("hvac mode set", "mode", mode)
	c.sendHVAC(ctx, state)
	return state, nil
}

// SetLights turns the office lights on or off.
func (c *Controller) SetLights(ctx context.Context, on bool) (State, error) {
	state, err := c.mutate(ctx, func(s *State) { s.LightsOn = on })
	if err != nil {
		return State{}, err
	}

	c.logger.Info("lights set", "on", on)
	if err := c.commander.SendLights(ctx, on); err != nil {
		c.logger.Warn("lights command failed", "error", err)
	}
	return state, nil
}

func (c *Controller) mutate(ctx context.Context, apply func(*State)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := c.state
	apply(&updated)
	if err := c.repo.Update(ctx, &updated); err != nil {
		return State{}, fmt.Errorf("persisting office state: %w", err)
	}
	c.state = updated
	return updated, nil
}

func (c *Controller) sendHVAC(ctx context.Context, state State) {
	if err := c.commander.SendHVAC(ctx, string(state.Mode), state.Temperature); err != nil {
		c.logger.Warn("hvac command failed", "error", err)
	}
}
