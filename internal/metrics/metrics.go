// Package metrics exposes Prometheus collectors for task list activity.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	commands *prometheus.CounterVec
	tasks    *prometheus.GaugeVec
	degraded prometheus.Gauge
}

// MustNewMetrics creates the collectors and registers them with reg.
// Registration errors panic, mirroring promauto.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tasklist",
				Name:      "commands_total",
				Help:      "Commands dispatched to the task list, by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		tasks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tasklist",
				Name:      "tasks",
				Help:      "Number of tasks in the store, by state.",
			},
			[]string{"state"},
		),
		degraded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "tasklist",
				Name:      "storage_degraded",
				Help:      "1 while task list changes cannot be saved.",
			},
		),
	}

	reg.MustRegister(m.commands, m.tasks, m.degraded)
	return m
}

// KindUnknown is the kind label for commands Dispatch does not handle.
const KindUnknown = "unknown"

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Outcome classifies a Dispatch error.
func Outcome(err error) string {
	var (
		verr *models.ValidationError
		nerr *models.NotFoundError
		cerr *tasks.UnknownCommandError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &verr), errors.As(err, &cerr):
		return OutcomeInvalid
	case errors.As(err, &nerr):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// ObserveCommand records one dispatched command and the view it produced.
func (m *Metrics) ObserveCommand(kind tasks.Kind, err error, view tasks.View) {
	if m == nil {
		return
	}
	label := string(kind)
	if !kind.Known() {
		label = KindUnknown
	}
	m.commands.WithLabelValues(label, Outcome(err)).Inc()
	m.ObserveView(view)
}

// ObserveView updates the task gauges from a rendered view.
func (m *Metrics) ObserveView(view tasks.View) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues("completed").Set(float64(view.Completed))
	m.tasks.WithLabelValues("pending").Set(float64(view.Total - view.Completed))
	if view.Degraded {
		m.degraded.Set(1)
	} else {
		m.degraded.Set(0)
	}
}
