package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/me/kborch/pkg/model"
)

// Metrics holds the Prometheus instruments for the gating scheduler.
type Metrics struct {
	Iterations        prometheus.Counter
	Decisions         *prometheus.CounterVec
	Actions           *prometheus.CounterVec
	OracleFailures    prometheus.Counter
	IterationDuration prometheus.Histogram
}

// New registers the scheduler instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Iterations: factory.NewCounter(prometheus.CounterOpts{
			Name: "kborch_iterations_total",
			Help: "Completed scheduler iterations.",
		}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kborch_decisions_total",
			Help: "Oracle decisions observed, by decision.",
		}, []string{"decision"}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kborch_actions_total",
			Help: "Iteration outcomes, by action.",
		}, []string{"action"}),
		OracleFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "kborch_oracle_failures_total",
			Help: "Oracle fetches that failed (transport or normalization).",
		}),
		IterationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kborch_iteration_duration_seconds",
			Help:    "Wall time of one scheduler iteration, throttle delay included.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveIteration records one completed iteration.
func (m *Metrics) ObserveIteration(decision model.Decision, action model.Action, elapsed time.Duration) {
	m.Iterations.Inc()
	m.Decisions.WithLabelValues(decision.String()).Inc()
	m.Actions.WithLabelValues(action.String()).Inc()
	m.IterationDuration.Observe(elapsed.Seconds())
}
