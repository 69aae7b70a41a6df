package automation

import (
	"context"
	"time"

	"github.com/officegrid/officegrid-core/internal/events"
)

// Publisher emits facility events. The event bus satisfies this.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) bool
}

// Ticker drives time-triggered rules. It publishes one time event per
// wall-clock minute; rules with an "at" condition match the minute they
// name. Minutes that pass while the process is down are never
// backfilled, and a minute is never published twice even when the tick
// interval is shorter than a minute.
type Ticker struct {
	bus      Publisher
	interval time.Duration
	logger   Logger

	now func() time.Time // injectable for tests

	lastMinute string
}

// NewTicker creates a ticker publishing onto bus every interval.
// A non-positive interval defaults to one minute. Logger may be nil.
func NewTicker(bus Publisher, interval time.Duration, logger Logger) *Ticker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Ticker{
		bus:      bus,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run publishes time events until the context is cancelled. The minute
// of startup is treated as already seen, so a rule for the current
// minute does not fire retroactively.
func (t *Ticker) Run(ctx context.Context) {
	t.lastMinute = t.currentMinute()
	t.logger.Info("time trigger started", "interval", t.interval)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("time trigger stopped")
			return
		case <-ticker.C:
			t.Tick(ctx)
		}
	}
}

// Tick publishes a time event if the wall-clock minute has changed
// since the last publish. Exposed for tests.
func (t *Ticker) Tick(ctx context.Context) {
	minute := t.currentMinute()
	if minute == t.lastMinute {
		return
	}
	t.lastMinute = minute
	t.bus.Publish(ctx, events.Tick(minute))
}

func (t *Ticker) currentMinute() string {
	return t.now().Format("15:04")
}
