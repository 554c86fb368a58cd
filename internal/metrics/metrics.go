package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition labels.
const (
	TransitionUnlock = "unlock"
	TransitionLock   = "lock"
)

//nolint:gochecknoglobals // promauto registers instruments once per process.
var (
	// DoorTransitionsTotal counts successful lock and unlock operations.
	DoorTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timed_door_transitions_total",
			Help: "Total number of successful door transitions.",
		},
		[]string{"transition"},
	)

	// DoorOpen is 1 while the door is open.
	DoorOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "timed_door_open",
			Help: "Whether the door is currently open. 1 if open, 0 otherwise.",
		},
	)

	// TimerNotificationsTotal counts timer notifications delivered to the door.
	TimerNotificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timed_door_timer_notifications_total",
			Help: "Total number of timer notifications delivered to the door.",
		},
	)

	// TimeoutViolationsTotal counts checks that found the door still open.
	TimeoutViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timed_door_timeout_violations_total",
			Help: "Total number of timeout checks that found the door open.",
		},
	)
)

// ObserveTransition records a successful transition and the resulting state.
func ObserveTransition(transition string, isOpen bool) {
	DoorTransitionsTotal.WithLabelValues(transition).Inc()
	SetOpen(isOpen)
}

// SetOpen updates the open gauge.
func SetOpen(isOpen bool) {
	if isOpen {
		DoorOpen.Set(1)
		return
	}

	DoorOpen.Set(0)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
