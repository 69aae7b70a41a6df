package climate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockRepository is an in-memory implementation of Repository for testing.
type mockRepository struct {
	state *State
	mu    sync.RWMutex
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		state: &State{Temperature: 21, Mode: ModeOff},
	}
}

func (m *mockRepository) Get(_ context.Context) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return nil, ErrStateNotFound
	}
	copied := *m.state
	return &copied, nil
}

func (m *mockRepository) Update(_ context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return ErrStateNotFound
	}
	state.UpdatedAt = time.Now().UTC()
	copied := *state
	m.state = &copied
	return nil
}

// captureCommander records hardware commands.
type captureCommander struct {
	mu    sync.Mutex
	hvac  []string
	light []bool
}

func (c *captureCommander) SendHVAC(_ context.Context, mode string, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hvac = append(c.hvac, mode)
	return nil
}

func (c *captureCommander) SendLights(_ context.Context, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.light = append(c.light, on)
	return nil
}

func newTestController(t *testing.T) (*Controller, *captureCommander) {
	t.Helper()
	commander := &captureCommander{}
	c := NewController(newMockRepository(), commander, nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c, commander
}

func TestSetTemperature(t *testing.T) {
	c, commander := newTestController(t)
	ctx := context.Background()

	state, err := c.SetTemperature(ctx, 24)
	if err != nil {
		t.Fatalf("SetTemperature() error = %v", err)
	}
	if state.Temperature != 24 {
		t.Errorf("temperature = %d, want 24", state.Temperature)
	}
	if len(commander.hvac) != 1 {
		t.Errorf("expected 1 hvac command, got %d", len(commander.hvac))
	}
}

func TestSetTemperatureBounds(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	// Boundary values are accepted.
	if _, err := c.SetTemperature(ctx, MinTemperature); err != nil {
		t.Errorf("SetTemperature(%d) error = %v", MinTemperature, err)
	}
	if _, err := c.SetTemperature(ctx, MaxTemperature); err != nil {
		t.Errorf("SetTemperature(%d) error = %v", MaxTemperature, err)
	}

	for _, temp := range []int{MinTemperature - 1, MaxTemperature + 1, -5, 100} {
		if _, err := c.SetTemperature(ctx, temp); !errors.Is(err, ErrTemperatureOutOfRange) {
			t.Errorf("SetTemperature(%d) error = %v, want ErrTemperatureOutOfRange", temp, err)
		}
	}

	// Rejected setpoints leave state untouched.
	if got := c.State().Temperature; got != MaxTemperature {
		t.Errorf("temperature after rejections = %d, want %d", got, MaxTemperature)
	}
}

func TestSetMode(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	for _, mode := range []Mode{ModeHeat, ModeCool, ModeOff} {
		state, err := c.SetMode(ctx, mode)
		if err != nil {
			t.Fatalf("SetMode(%q) error = %v", mode, err)
		}
		if state.Mode != mode {
			t.Errorf("mode = %q, want %q", state.Mode, mode)
		}
	}

	if _, err := c.SetMode(ctx, "auto"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("SetMode(auto) error = %v, want ErrInvalidMode", err)
	}
}

func TestSetLights(t *testing.T) {
	c, commander := newTestController(t)
	ctx := context.Background()

	state, err := c.SetLights(ctx, true)
	if err != nil {
		t.Fatalf("SetLights() error = %v", err)
	}
	if !state.LightsOn {
		t.Error("lights not on")
	}

	state, err = c.SetLights(ctx, false)
	if err != nil {
		t.Fatalf("SetLights() error = %v", err)
	}
	if state.LightsOn {
		t.Error("lights still on")
	}

	if len(commander.light) != 2 {
		t.Errorf("expected 2 light commands, got %d", len(commander.light))
	}
}

func TestCommandFailureDoesNotRollBack(t *testing.T) {
	repo := newMockRepository()
	c := NewController(repo, failingCommander{}, nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	state, err := c.SetLights(context.Background(), true)
	if err != nil {
		t.Fatalf("SetLights() error = %v", err)
	}
	if !state.LightsOn {
		t.Error("state change lost after command failure")
	}
}

type failingCommander struct{}

func (failingCommander) SendHVAC(context.Context, string, int) error {
	return errors.New("broker unavailable")
}

func (failingCommander) SendLights(context.Context, bool) error {
	return errors.New("broker unavailable")
}
