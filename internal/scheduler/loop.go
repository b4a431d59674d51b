package scheduler

import (
	"context"
	"fmt"

	"github.com/me/kborch/pkg/model"
)

// RunLoop performs n sequential gated iterations of jobID and aggregates
// their outcomes. Each iteration fully completes, throttle delay included,
// before the next begins.
//
// Any failing iteration aborts the loop and surfaces its error; the partial
// summary is discarded so callers never mistake a truncated aggregate for a
// complete one.
func (s *Scheduler) RunLoop(ctx context.Context, jobID string, n int) (*model.TelemetrySummary, error) {
	if n < 1 {
		return nil, fmt.Errorf("iterations must be at least 1, got %d", n)
	}

	summary := model.NewTelemetrySummary()
	for i := 1; i <= n; i++ {
		outcome, err := s.RunIteration(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("iteration %d of %d: %w", i, n, err)
		}
		summary.Record(outcome)
		s.logger.Debug("iteration recorded",
			"iteration", i,
			"decision", outcome.Decision,
			"action", outcome.Action,
		)
	}
	return summary, nil
}
