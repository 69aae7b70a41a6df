package energy

import (
	"context"
	"fmt"
	"sync"
)

// Logger is the minimal logging interface the accumulator requires.
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

// Exporter forwards ledger totals to a time-series store. The InfluxDB
// adapter satisfies this; export failures are logged and never roll
// back the ledger.
type Exporter interface {
	ExportSavings(ctx context.Context, savings Savings) error
}

// noopExporter discards all exports.
type noopExporter struct{}

func (noopExporter) ExportSavings(context.Context, Savings) error { return nil }

// Accumulator is the energy savings ledger. Increments are validated,
// applied to the cached totals and persisted under one lock, so totals
// are monotonically non-decreasing across any sequence of operations.
type Accumulator struct {
	mu       sync.RWMutex
	totals   Savings
	repo     Repository
	exporter Exporter
	logger   Logger
}

// NewAccumulator creates a savings accumulator. Call Load before use.
// Exporter and logger may be nil.
func NewAccumulator(repo Repository, exporter Exporter, logger Logger) *Accumulator {
	if exporter == nil {
		exporter = noopExporter{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Accumulator{
		repo:     repo,
		exporter: exporter,
		logger:   logger,
	}
}

// Load populates the cached totals from the repository.
func (a *Accumulator) Load(ctx context.Context) error {
	savings, err := a.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading savings ledger: %w", err)
	}

	a.mu.Lock()
	a.totals = *savings
	a.mu.Unlock()
	return nil
}

// Totals returns a copy of the current ledger totals.
func (a *Accumulator) Totals() Savings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.totals
}

// AddHVACRuntimeReduced credits hours of avoided HVAC runtime.
func (a *Accumulator) AddHVACRuntimeReduced(ctx context.Context, hours float64) error {
	return a.add(ctx, hours, func(s *Savings) { s.HVACRuntimeReducedHours += hours })
}

// AddLightsOff credits hours of lights kept off.
func (a *Accumulator) AddLightsOff(ctx context.Context, hours float64) error {
	return a.add(ctx, hours, func(s *Savings) { s.LightsOffHours += hours })
}

func (a *Accumulator) add(ctx context.Context, hours float64, apply func(*Savings)) error {
	if hours < 0 {
		return ErrNegativeDelta
	}
	if hours == 0 {
		return nil
	}

	a.mu.Lock()
	updated := a.totals
	apply(&updated)
	if err := a.repo.Update(ctx, &updated); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("persisting savings: %w", err)
	}
	a.totals = updated
	a.mu.Unlock()

	a.logger.Debug("savings credited",
		"hvac_hours", updated.HVACRuntimeReducedHours,
		"lights_hours", updated.LightsOffHours,
	)
	if err := a.exporter.ExportSavings(ctx, updated); err != nil {
		a.logger.Warn("savings export failed", "error", err)
	}
	return nil
}
