package automation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/officegrid/officegrid-core/internal/events"
)

// mockClimate records lighting and HVAC actions.
type mockClimate struct {
	mu         sync.Mutex
	lights     []bool
	hvacOffs   int
	lightsErr  error
	hvacOffErr error
}

func (m *mockClimate) SetLights(_ context.Context, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lightsErr != nil {
		return m.lightsErr
	}
	m.lights = append(m.lights, on)
	return nil
}

func (m *mockClimate) HVACOff(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hvacOffErr != nil {
		return m.hvacOffErr
	}
	m.hvacOffs++
	return nil
}

// mockParking records reserve and clear calls.
type mockParking struct {
	mu         sync.Mutex
	reserved   map[int]string
	cleared    []int
	reserveErr error
}

func newMockParking() *mockParking {
	return &mockParking{reserved: make(map[int]string)}
}

func (m *mockParking) Reserve(_ context.Context, spotID int, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reserveErr != nil {
		return m.reserveErr
	}
	m.reserved[spotID] = owner
	return nil
}

func (m *mockParking) Clear(_ context.Context, spotID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = append(m.cleared, spotID)
	return nil
}

// mockSavings records ledger credits.
type mockSavings struct {
	mu    sync.Mutex
	hvac  float64
	light float64
}

func (m *mockSavings) AddHVACRuntimeReduced(_ context.Context, hours float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hvac += hours
	return nil
}

func (m *mockSavings) AddLightsOff(_ context.Context, hours float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.light += hours
	return nil
}

type engineFixture struct {
	engine   *Engine
	registry *Registry
	climate  *mockClimate
	parking  *mockParking
	savings  *mockSavings
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		registry: NewRegistry(newMockRepository()),
		climate:  &mockClimate{},
		parking:  newMockParking(),
		savings:  &mockSavings{},
	}
	f.engine = NewEngine(f.registry, f.climate, f.parking, f.savings, nil, nil)
	return f
}

func (f *engineFixture) mustCreate(t *testing.T, rule *Rule) *Rule {
	t.Helper()
	if err := f.registry.CreateRule(context.Background(), rule); err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}
	return rule
}

func TestHandleEventMatchingRule(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, motionRule("main_office", ActionLightsOn))

	fired := f.engine.HandleEvent(context.Background(), events.Motion("main_office"))

	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if len(f.climate.lights) != 1 || !f.climate.lights[0] {
		t.Errorf("lights calls = %v, want [true]", f.climate.lights)
	}
}

func TestHandleEventConditionMismatch(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, motionRule("main_office", ActionLightsOn))

	fired := f.engine.HandleEvent(context.Background(), events.Motion("lobby"))

	if fired != 0 {
		t.Errorf("fired = %d, want 0", fired)
	}
	if len(f.climate.lights) != 0 {
		t.Error("action ran despite condition mismatch")
	}
}

func TestHandleEventSkipsInactiveRules(t *testing.T) {
	f := newEngineFixture(t)
	rule := motionRule("main_office", ActionLightsOn)
	rule.Active = false
	f.mustCreate(t, rule)

	if fired := f.engine.HandleEvent(context.Background(), events.Motion("main_office")); fired != 0 {
		t.Errorf("fired = %d, want 0", fired)
	}
}

func TestHandleEventCreationOrder(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, motionRule("main_office", ActionLightsOn))
	f.mustCreate(t, motionRule("main_office", ActionLightsOff))
	f.mustCreate(t, motionRule("main_office", ActionLightsOn))

	f.engine.HandleEvent(context.Background(), events.Motion("main_office"))

	want := []bool{true, false, true}
	if len(f.climate.lights) != len(want) {
		t.Fatalf("lights calls = %v, want %v", f.climate.lights, want)
	}
	for i, on := range want {
		if f.climate.lights[i] != on {
			t.Errorf("lights[%d] = %v, want %v", i, f.climate.lights[i], on)
		}
	}
}

func TestHandleEventActionFailureIsolated(t *testing.T) {
	f := newEngineFixture(t)
	f.parking.reserveErr = errors.New("spot unavailable")

	login := Condition{Username: "user1"}
	f.mustCreate(t, &Rule{Trigger: TriggerUserLogin, Condition: login, Action: ActionReserveParking, Params: ActionParams{SpotID: 3}, Active: true})
	f.mustCreate(t, &Rule{Trigger: TriggerUserLogin, Condition: login, Action: ActionLightsOn, Active: true})

	fired := f.engine.HandleEvent(context.Background(), events.UserLogin("user1"))

	// The failing reserve does not stop the lights rule.
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if len(f.climate.lights) != 1 {
		t.Error("second rule did not run after first rule failed")
	}
}

func TestHandleEventUserLoginCaseInsensitive(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, &Rule{Trigger: TriggerUserLogin, Condition: Condition{Username: "User1"}, Action: ActionLightsOn, Active: true})

	if fired := f.engine.HandleEvent(context.Background(), events.UserLogin("USER1")); fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestHandleEventParkingCheckinTrigger(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, &Rule{Trigger: TriggerParkingCheckin, Condition: Condition{SpotID: 7}, Action: ActionLightsOn, Active: true})

	if fired := f.engine.HandleEvent(context.Background(), events.ParkingCheckin(7, "user1")); fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if fired := f.engine.HandleEvent(context.Background(), events.ParkingCheckin(8, "user1")); fired != 0 {
		t.Errorf("fired for wrong spot = %d, want 0", fired)
	}
}

func TestHandleEventTimeTrigger(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, &Rule{Trigger: TriggerTime, Condition: Condition{At: "19:00"}, Action: ActionHVACOff, Active: true})

	if fired := f.engine.HandleEvent(context.Background(), events.Tick("19:00")); fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if f.climate.hvacOffs != 1 {
		t.Errorf("hvac offs = %d, want 1", f.climate.hvacOffs)
	}
	if fired := f.engine.HandleEvent(context.Background(), events.Tick("19:01")); fired != 0 {
		t.Errorf("fired for other minute = %d, want 0", fired)
	}
}

func TestSavingsCredited(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, motionRule("empty", ActionLightsOff))
	f.mustCreate(t, &Rule{Trigger: TriggerTime, Condition: Condition{At: "19:00"}, Action: ActionHVACOff, Active: true})

	f.engine.HandleEvent(context.Background(), events.Motion("empty"))
	f.engine.HandleEvent(context.Background(), events.Tick("19:00"))

	if f.savings.light != lightsOffSavedHours {
		t.Errorf("lights-off credit = %v, want %v", f.savings.light, lightsOffSavedHours)
	}
	if f.savings.hvac != hvacOffSavedHours {
		t.Errorf("hvac credit = %v, want %v", f.savings.hvac, hvacOffSavedHours)
	}
}

func TestLightsOnDoesNotCreditSavings(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, motionRule("main_office", ActionLightsOn))

	f.engine.HandleEvent(context.Background(), events.Motion("main_office"))

	if f.savings.light != 0 || f.savings.hvac != 0 {
		t.Errorf("savings credited for lights_on: %+v", f.savings)
	}
}

func TestReserveParkingOwner(t *testing.T) {
	f := newEngineFixture(t)
	f.mustCreate(t, &Rule{Trigger: TriggerUserLogin, Condition: Condition{Username: "user1"}, Action: ActionReserveParking, Params: ActionParams{SpotID: 5}, Active: true})
	f.mustCreate(t, &Rule{Trigger: TriggerTime, Condition: Condition{At: "06:00"}, Action: ActionReserveParking, Params: ActionParams{SpotID: 6}, Active: true})

	f.engine.HandleEvent(context.Background(), events.UserLogin("user1"))
	f.engine.HandleEvent(context.Background(), events.Tick("06:00"))

	if f.parking.reserved[5] != "user1" {
		t.Errorf("spot 5 owner = %q, want user1", f.parking.reserved[5])
	}
	if f.parking.reserved[6] != systemActor {
		t.Errorf("spot 6 owner = %q, want %q", f.parking.reserved[6], systemActor)
	}
}

func TestTestRuleIgnoresActiveFlag(t *testing.T) {
	f := newEngineFixture(t)
	rule := motionRule("main_office", ActionLightsOn)
	rule.Active = false
	f.mustCreate(t, rule)

	got, err := f.engine.TestRule(context.Background(), rule.ID)
	if err != nil {
		t.Fatalf("TestRule() error = %v", err)
	}
	if got.ID != rule.ID {
		t.Errorf("returned rule ID = %d, want %d", got.ID, rule.ID)
	}
	if len(f.climate.lights) != 1 {
		t.Error("inactive rule's action did not run under test")
	}
}

func TestTestRuleNotFound(t *testing.T) {
	f := newEngineFixture(t)

	if _, err := f.engine.TestRule(context.Background(), 42); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("TestRule(42) error = %v, want ErrRuleNotFound", err)
	}
}

func TestTestRuleSurfacesActionError(t *testing.T) {
	f := newEngineFixture(t)
	f.climate.lightsErr = errors.New("mqtt down")
	rule := f.mustCreate(t, motionRule("main_office", ActionLightsOn))

	if _, err := f.engine.TestRule(context.Background(), rule.ID); err == nil {
		t.Error("expected action error from TestRule")
	}
}
