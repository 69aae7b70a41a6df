package events

import (
	"context"
	"sync"
)

// Logger is the minimal logging interface the bus requires.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine, in subscription order.
type Handler func(ctx context.Context, ev Event)

type dispatchKey struct{}

// dispatching tracks which event types are mid-dispatch on the current
// call path. Carried through the context so that a handler action which
// publishes again can be detected and dropped.
type dispatching map[Type]bool

// Bus is a synchronous in-process event bus. Publishing an event invokes
// every subscribed handler before Publish returns.
//
// The bus bounds re-entrancy: if a handler, directly or through the code
// it calls, publishes another event of the type currently being
// dispatched, that nested publish is dropped and logged rather than
// dispatched. Nested publishes of a different type proceed normally.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   Logger
}

// NewBus creates an event bus. Logger may be nil.
func NewBus(logger Logger) *Bus {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Bus{logger: logger}
}

// Subscribe registers a handler for all event types. Handlers cannot be
// removed; subscribe once during wiring.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish dispatches ev to every subscribed handler in subscription
// order. A panicking handler is recovered and logged; remaining handlers
// still run.
//
// Publish returns true if the event was dispatched, false if it was
// dropped by the re-entrancy guard.
func (b *Bus) Publish(ctx context.Context, ev Event) bool {
	active, _ := ctx.Value(dispatchKey{}).(dispatching)
	if active[ev.Type] {
		b.logger.Warn("dropped re-entrant event", "type", ev.Type)
		return false
	}

	next := make(dispatching, len(active)+1)
	for t := range active {
		next[t] = true
	}
	next[ev.Type] = true
	ctx = context.WithValue(ctx, dispatchKey{}, next)

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	b.logger.Debug("dispatching event", "type", ev.Type, "handlers", len(handlers))
	for _, h := range handlers {
		b.invoke(ctx, h, ev)
	}
	return true
}

func (b *Bus) invoke(ctx context.Context, h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "type", ev.Type, "panic", r)
		}
	}()
	h(ctx, ev)
}
