package energy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockRepository is an in-memory implementation of Repository for testing.
type mockRepository struct {
	savings *Savings
	mu      sync.RWMutex
}

func newMockRepository() *mockRepository {
	return &mockRepository{savings: &Savings{}}
}

func (m *mockRepository) Get(_ context.Context) (*Savings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.savings == nil {
		return nil, ErrLedgerNotFound
	}
	copied := *m.savings
	return &copied, nil
}

func (m *mockRepository) Update(_ context.Context, savings *Savings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.savings == nil {
		return ErrLedgerNotFound
	}
	savings.UpdatedAt = time.Now().UTC()
	copied := *savings
	m.savings = &copied
	return nil
}

// captureExporter records exported snapshots.
type captureExporter struct {
	mu        sync.Mutex
	snapshots []Savings
}

func (c *captureExporter) ExportSavings(_ context.Context, savings Savings) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = append(c.snapshots, savings)
	return nil
}

func newTestAccumulator(t *testing.T) (*Accumulator, *captureExporter) {
	t.Helper()
	exporter := &captureExporter{}
	a := NewAccumulator(newMockRepository(), exporter, nil)
	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return a, exporter
}

func TestAddCredits(t *testing.T) {
	a, exporter := newTestAccumulator(t)
	ctx := context.Background()

	if err := a.AddHVACRuntimeReduced(ctx, 2); err != nil {
		t.Fatalf("AddHVACRuntimeReduced() error = %v", err)
	}
	if err := a.AddLightsOff(ctx, 1.5); err != nil {
		t.Fatalf("AddLightsOff() error = %v", err)
	}
	if err := a.AddLightsOff(ctx, 0.5); err != nil {
		t.Fatalf("AddLightsOff() error = %v", err)
	}

	totals := a.Totals()
	if totals.HVACRuntimeReducedHours != 2 {
		t.Errorf("hvac hours = %v, want 2", totals.HVACRuntimeReducedHours)
	}
	if totals.LightsOffHours != 2 {
		t.Errorf("lights hours = %v, want 2", totals.LightsOffHours)
	}

	if len(exporter.snapshots) != 3 {
		t.Errorf("expected 3 exports, got %d", len(exporter.snapshots))
	}
}

func TestRejectNegativeDelta(t *testing.T) {
	a, _ := newTestAccumulator(t)
	ctx := context.Background()

	if err := a.AddHVACRuntimeReduced(ctx, -1); !errors.Is(err, ErrNegativeDelta) {
		t.Errorf("AddHVACRuntimeReduced(-1) error = %v, want ErrNegativeDelta", err)
	}
	if err := a.AddLightsOff(ctx, -0.1); !errors.Is(err, ErrNegativeDelta) {
		t.Errorf("AddLightsOff(-0.1) error = %v, want ErrNegativeDelta", err)
	}

	totals := a.Totals()
	if totals.HVACRuntimeReducedHours != 0 || totals.LightsOffHours != 0 {
		t.Errorf("totals changed after rejected deltas: %+v", totals)
	}
}

func TestZeroDeltaIsNoOp(t *testing.T) {
	a, exporter := newTestAccumulator(t)

	if err := a.AddLightsOff(context.Background(), 0); err != nil {
		t.Fatalf("AddLightsOff(0) error = %v", err)
	}
	if len(exporter.snapshots) != 0 {
		t.Error("zero delta should not export")
	}
}

func TestMonotonicUnderConcurrency(t *testing.T) {
	a, _ := newTestAccumulator(t)
	ctx := context.Background()

	const workers = 10
	const perWorker = 20
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if err := a.AddLightsOff(ctx, 0.1); err != nil {
					t.Errorf("AddLightsOff() error = %v", err)
				}
			}
		}()
	}
	wg.Wait()

	want := float64(workers*perWorker) * 0.1
	got := a.Totals().LightsOffHours
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("lights hours = %v, want %v", got, want)
	}
}

func TestExportFailureDoesNotRollBack(t *testing.T) {
	a := NewAccumulator(newMockRepository(), failingExporter{}, nil)
	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := a.AddLightsOff(context.Background(), 1); err != nil {
		t.Fatalf("AddLightsOff() error = %v", err)
	}
	if a.Totals().LightsOffHours != 1 {
		t.Error("ledger lost credit after export failure")
	}
}

type failingExporter struct{}

func (failingExporter) ExportSavings(context.Context, Savings) error {
	return errors.New("influx unavailable")
}
