package daemon

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics
var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bell_daemon_ticks_total", Help: "Completed ticks"},
	)
	sessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bell_sessions_started_total", Help: "Sessions started"},
		[]string{"trigger"},
	)
	sessionsStopped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bell_sessions_stopped_total", Help: "Sessions stopped"},
		[]string{"reason"},
	)
	commandsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bell_commands_processed_total", Help: "Commands drained"},
		[]string{"type"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(ticksTotal, sessionsStarted, sessionsStopped, commandsProcessed)
}

// triggerLabel keeps the started-sessions label cardinality down: every
// "schedule:<id>" reason collapses to "schedule".
func triggerLabel(reason string) string {
	if strings.HasPrefix(reason, "schedule:") {
		return "schedule"
	}
	return "command"
}
