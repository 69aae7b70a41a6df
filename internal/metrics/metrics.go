// Package metrics exposes Prometheus counters for OfficeGrid Core.
//
// Counters are registered once and incremented through package
// functions; the Engine adapter satisfies the automation package's
// Metrics interface without the engine importing prometheus directly.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	eventsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officegrid",
			Name:      "events_dispatched_total",
			Help:      "Count of facility events dispatched by type.",
		},
		[]string{"type"},
	)

	rulesFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officegrid",
			Name:      "rules_fired_total",
			Help:      "Count of automation rules fired by trigger and action.",
		},
		[]string{"trigger", "action"},
	)

	actionsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officegrid",
			Name:      "actions_failed_total",
			Help:      "Count of automation actions that returned an error.",
		},
		[]string{"action"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "officegrid",
			Name:      "bookings_created_total",
			Help:      "Count of room bookings created.",
		},
	)

	bookingsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "officegrid",
			Name:      "bookings_rejected_total",
			Help:      "Count of room bookings rejected due to conflicts.",
		},
	)

	parkingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officegrid",
			Name:      "parking_transitions_total",
			Help:      "Count of parking spot state transitions by kind.",
		},
		[]string{"transition"},
	)
)

// Register registers all counters with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			eventsDispatched, rulesFired, actionsFailed,
			bookingsCreated, bookingsRejected, parkingTransitions,
		)
	})
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncEventDispatched(eventType string) {
	eventsDispatched.WithLabelValues(eventType).Inc()
}

func IncRuleFired(trigger, action string) {
	rulesFired.WithLabelValues(trigger, action).Inc()
}

func IncActionFailed(action string) {
	actionsFailed.WithLabelValues(action).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingRejected() {
	bookingsRejected.Inc()
}

func IncParkingTransition(transition string) {
	parkingTransitions.WithLabelValues(transition).Inc()
}

// Engine satisfies the automation package's Metrics interface.
type Engine struct{}

func (Engine) EventDispatched(eventType string) { IncEventDispatched(eventType) }
func (Engine) RuleFired(trigger, action string) { IncRuleFired(trigger, action) }
func (Engine) ActionFailed(action string) { IncActionFailed(action) }
