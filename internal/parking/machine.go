package parking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/officegrid/officegrid-core/internal/events"
)

// Logger is the minimal logging interface the machine requires.
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

// Publisher emits facility events. The event bus satisfies this.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) bool
}

// noopPublisher drops all events.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, events.Event) bool { return false }

// Machine manages parking spot state transitions.
//
// It maintains an in-memory cache of all spots backed by a Repository.
// Every transition is validated and persisted under a single lock, so a
// spot can never be won by two users at once. Events are emitted after
// the mutation has been persisted, outside the lock.
type Machine struct {
	mu     sync.RWMutex
	spots  map[int]*Spot
	repo   Repository
	bus    Publisher
	logger Logger
}

// NewMachine creates a parking machine. Call Load before use.
// Bus and logger may be nil.
func NewMachine(repo Repository, bus Publisher, logger Logger) *Machine {
	if bus == nil {
		bus = noopPublisher{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Machine{
		spots:  make(map[int]*Spot),
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Provision ensures spots 1..count exist, creating missing ones as
// available. Existing spots keep their state, so restarting with a
// larger count only adds spots.
func (m *Machine) Provision(ctx context.Context, count int) error {
	if count < 1 {
		return fmt.Errorf("parking: invalid spot count %d", count)
	}

	existing, err := m.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing spots: %w", err)
	}
	have := make(map[int]bool, len(existing))
	for _, s := range existing {
		have[s.ID] = true
	}

	created := 0
	for id := 1; id <= count; id++ {
		if have[id] {
			continue
		}
		spot := &Spot{ID: id, Status: StatusAvailable}
		if err := m.repo.Create(ctx, spot); err != nil {
			return fmt.Errorf("creating spot %d: %w", id, err)
		}
		created++
	}
	if created > 0 {
		m.logger.Info("provisioned parking spots", "created", created, "total", count)
	}
	return nil
}

// Load populates the in-memory cache from the repository.
func (m *Machine) Load(ctx context.Context) error {
	spots, err := m.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading spots: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.spots = make(map[int]*Spot, len(spots))
	for i := range spots {
		s := spots[i]
		m.spots[s.ID] = &s
	}
	m.logger.Debug("loaded parking spots", "count", len(spots))
	return nil
}

// Get returns a copy of the spot with the given ID.
func (m *Machine) Get(id int) (*Spot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spot, ok := m.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	copied := *spot
	return &copied, nil
}

// List returns copies of all spots ordered by ID.
func (m *Machine) List() []Spot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spots := make([]Spot, 0, len(m.spots))
	for _, s := range m.spots {
		spots = append(spots, *s)
	}
	sort.Slice(spots, func(i, j int) bool { return spots[i].ID < spots[j].ID })
	return spots
}

// ListByUser returns copies of all spots held by the given user.
func (m *Machine) ListByUser(user string) []Spot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var spots []Spot
	for _, s := range m.spots {
		if s.Held() && strings.EqualFold(s.Owner, user) {
			spots = append(spots, *s)
		}
	}
	sort.Slice(spots, func(i, j int) bool { return spots[i].ID < spots[j].ID })
	return spots
}

// Stats returns the number of spots in each status.
func (m *Machine) Stats() map[Status]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := map[Status]int{
		StatusAvailable: 0,
		StatusReserved:  0,
		StatusOccupied:  0,
	}
	for _, s := range m.spots {
		stats[s.Status]++
	}
	return stats
}

// Reserve transitions an available spot to reserved for the given user.
// Returns ErrSpotUnavailable if the spot is already held, including by
// the same user.
func (m *Machine) Reserve(ctx context.Context, id int, user string) (*Spot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	spot, ok := m.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	if spot.Status != StatusAvailable {
		return nil, ErrSpotUnavailable
	}

	updated := *spot
	updated.Status = StatusReserved
	updated.Owner = user
	if err := m.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("persisting reservation: %w", err)
	}

	*spot = updated
	m.logger.Info("spot reserved", "spot_id", id, "user", user)
	copied := updated
	return &copied, nil
}

// CheckIn transitions a spot to occupied. A reserved spot can only be
// checked into by its owner; an available spot accepts a walk-up
// check-in. Emits a parking_checkin event after the transition is
// persisted.
func (m *Machine) CheckIn(ctx context.Context, id int, user string) (*Spot, error) {
	m.mu.Lock()

	spot, ok := m.spots[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrSpotNotFound
	}

	switch spot.Status {
	case StatusAvailable:
		// walk-up
	case StatusReserved:
		if !strings.EqualFold(spot.Owner, user) {
			m.mu.Unlock()
			return nil, ErrNotOwner
		}
	case StatusOccupied:
		m.mu.Unlock()
		return nil, ErrSpotUnavailable
	}

	updated := *spot
	updated.Status = StatusOccupied
	updated.Owner = user
	if err := m.repo.Update(ctx, &updated); err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("persisting check-in: %w", err)
	}

	*spot = updated
	copied := updated
	m.mu.Unlock()

	m.logger.Info("spot checked in", "spot_id", id, "user", user)
	m.bus.Publish(ctx, events.ParkingCheckin(id, user))
	return &copied, nil
}

// Unreserve releases a reservation held by the given user. Only the
// owner can unreserve; occupied spots must be checked out instead.
func (m *Machine) Unreserve(ctx context.Context, id int, user string) (*Spot, error) {
	return m.release(ctx, id, user, StatusReserved)
}

// CheckOut vacates an occupied spot held by the given user.
func (m *Machine) CheckOut(ctx context.Context, id int, user string) (*Spot, error) {
	return m.release(ctx, id, user, StatusOccupied)
}

func (m *Machine) release(ctx context.Context, id int, user string, from Status) (*Spot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	spot, ok := m.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	if spot.Status != from {
		return nil, ErrSpotNotHeld
	}
	if !strings.EqualFold(spot.Owner, user) {
		return nil, ErrNotOwner
	}

	updated := *spot
	updated.Status = StatusAvailable
	updated.Owner = ""
	if err := m.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("persisting release: %w", err)
	}

	*spot = updated
	m.logger.Info("spot released", "spot_id", id, "user", user, "from", from)
	copied := updated
	return &copied, nil
}

// Clear forces a spot back to available regardless of current state or
// owner. Used by administrators and automation actions. Clearing an
// already available spot is a no-op.
func (m *Machine) Clear(ctx context.Context, id int) (*Spot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	spot, ok := m.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	if spot.Status == StatusAvailable {
		copied := *spot
		return &copied, nil
	}

	updated := *spot
	updated.Status = StatusAvailable
	updated.Owner = ""
	if err := m.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("persisting clear: %w", err)
	}

	*spot = updated
	m.logger.Info("spot cleared", "spot_id", id)
	copied := updated
	return &copied, nil
}
