package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/kborch/internal/job"
	"github.com/me/kborch/internal/metrics"
	"github.com/me/kborch/internal/oracle"
	"github.com/me/kborch/pkg/model"
)

// Config holds gating scheduler configuration.
type Config struct {
	// ThrottleDelay is the backoff performed before a throttled execution.
	ThrottleDelay time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{ThrottleDelay: 500 * time.Millisecond}
}

// JobExecutionError wraps a job failure together with the health context that
// preceded it, so callers can log which decision led to the attempt.
type JobExecutionError struct {
	JobID  string
	Health model.HealthRecord
	Err    error
}

func (e *JobExecutionError) Error() string {
	return fmt.Sprintf("job %q failed under decision %s: %v", e.JobID, e.Health.Decision, e.Err)
}

func (e *JobExecutionError) Unwrap() error {
	return e.Err
}

// Scheduler gates job execution on oracle health decisions.
//
// Iterations are synchronous and sequential; a Scheduler instance is not
// meant to run concurrent iterations against itself.
type Scheduler struct {
	oracle   oracle.Source
	registry *job.Registry
	config   Config
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures optional Scheduler dependencies.
type Option func(*Scheduler)

// WithMetrics attaches Prometheus instruments to the scheduler.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// New creates a gating scheduler.
func New(src oracle.Source, reg *job.Registry, cfg Config, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		oracle:   src,
		registry: reg,
		config:   cfg,
		logger:   logger.With("component", "scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunIteration performs one fresh gating pass around jobID:
// fetch health, resolve the job, then run, throttle-then-run, or skip.
//
// Oracle and registry errors propagate unchanged; an unreadable health
// signal is never treated as Keep. A job failure surfaces as a
// JobExecutionError carrying the already-fetched HealthRecord.
func (s *Scheduler) RunIteration(ctx context.Context, jobID string) (model.JobOutcome, error) {
	start := time.Now()

	health, err := s.oracle.Fetch(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.OracleFailures.Inc()
		}
		return model.JobOutcome{}, err
	}

	j, err := s.registry.Resolve(jobID)
	if err != nil {
		return model.JobOutcome{}, err
	}

	outcome := model.JobOutcome{
		JobID:    jobID,
		Decision: health.Decision,
		Health:   health,
	}

	switch health.Decision {
	case model.DecisionKill:
		s.logger.Info("job skipped", "job", jobID, "decision", health.Decision)
		outcome.Action = model.ActionSkipped

	case model.DecisionThrottle:
		s.logger.Info("throttling before job", "job", jobID, "delay", s.config.ThrottleDelay)
		// The delay is unconditional; it is not cancellable mid-sleep.
		time.Sleep(s.config.ThrottleDelay)
		result, err := s.execute(ctx, j, health)
		if err != nil {
			return model.JobOutcome{}, err
		}
		outcome.Action = model.ActionThrottled
		outcome.JobResult = result

	default: // Keep
		result, err := s.execute(ctx, j, health)
		if err != nil {
			return model.JobOutcome{}, err
		}
		outcome.Action = model.ActionRan
		outcome.JobResult = result
	}

	if s.metrics != nil {
		s.metrics.ObserveIteration(health.Decision, outcome.Action, time.Since(start))
	}
	return outcome, nil
}

func (s *Scheduler) execute(ctx context.Context, j job.Job, health model.HealthRecord) (any, error) {
	result, err := j.Execute(ctx)
	if err != nil {
		s.logger.Error("job failed", "job", j.ID(), "decision", health.Decision, "error", err)
		return nil, &JobExecutionError{JobID: j.ID(), Health: health, Err: err}
	}
	return result, nil
}
