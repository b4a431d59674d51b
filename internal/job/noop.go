package job

import (
	"context"
	"log/slog"
)

// NoopJob is a local placeholder job that does no work. It exists so the
// gating path can be exercised end to end without an external executor.
type NoopJob struct {
	id     string
	logger *slog.Logger
}

// NewNoopJob creates a no-op job registered under id.
func NewNoopJob(id string, logger *slog.Logger) *NoopJob {
	return &NoopJob{id: id, logger: logger.With("component", "job", "id", id)}
}

// ID returns the job identifier.
func (j *NoopJob) ID() string {
	return j.id
}

// Execute logs and returns a fixed marker result.
func (j *NoopJob) Execute(ctx context.Context) (any, error) {
	j.logger.Debug("noop job executed")
	return "executed", nil
}
