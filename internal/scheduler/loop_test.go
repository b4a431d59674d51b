package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/me/kborch/internal/oracle"
	"github.com/me/kborch/pkg/model"
)

func TestRunLoop_AllKeep(t *testing.T) {
	const n = 5
	src := &stubSource{records: []model.HealthRecord{healthWith(model.DecisionKeep)}}
	sched, j := testScheduler(t, src, time.Millisecond)

	summary, err := sched.RunLoop(context.Background(), "dummy", n)
	if err != nil {
		t.Fatalf("RunLoop: %v", err)
	}

	if summary.Iterations != n {
		t.Errorf("Iterations = %d, want %d", summary.Iterations, n)
	}
	if summary.Decisions[model.DecisionKeep] != n ||
		summary.Decisions[model.DecisionThrottle] != 0 ||
		summary.Decisions[model.DecisionKill] != 0 {
		t.Errorf("decisions = %v, want {Keep: %d}", summary.Decisions, n)
	}
	if summary.Actions[model.ActionRan] != n ||
		summary.Actions[model.ActionThrottled] != 0 ||
		summary.Actions[model.ActionSkipped] != 0 {
		t.Errorf("actions = %v, want {ran: %d}", summary.Actions, n)
	}
	if j.calls != n {
		t.Errorf("job calls = %d, want %d", j.calls, n)
	}
}

func TestRunLoop_MixedDecisions(t *testing.T) {
	src := &stubSource{records: []model.HealthRecord{
		healthWith(model.DecisionKeep),
		healthWith(model.DecisionThrottle),
		healthWith(model.DecisionKill),
	}}
	sched, j := testScheduler(t, src, time.Millisecond)

	summary, err := sched.RunLoop(context.Background(), "dummy", 3)
	if err != nil {
		t.Fatalf("RunLoop: %v", err)
	}

	if summary.Decisions[model.DecisionKeep] != 1 ||
		summary.Decisions[model.DecisionThrottle] != 1 ||
		summary.Decisions[model.DecisionKill] != 1 {
		t.Errorf("decisions = %v", summary.Decisions)
	}
	if summary.Actions[model.ActionRan] != 1 ||
		summary.Actions[model.ActionThrottled] != 1 ||
		summary.Actions[model.ActionSkipped] != 1 {
		t.Errorf("actions = %v", summary.Actions)
	}
	// Kill on the last iteration: job ran twice, not three times.
	if j.calls != 2 {
		t.Errorf("job calls = %d, want 2", j.calls)
	}
}

func TestRunLoop_LastHealthIsMostRecent(t *testing.T) {
	first := healthWith(model.DecisionKeep)
	last := healthWith(model.DecisionKeep)
	last.Mean = 0.77
	src := &stubSource{records: []model.HealthRecord{first, last}}
	sched, _ := testScheduler(t, src, time.Millisecond)

	summary, err := sched.RunLoop(context.Background(), "dummy", 2)
	if err != nil {
		t.Fatalf("RunLoop: %v", err)
	}
	if summary.LastHealth != last {
		t.Errorf("LastHealth = %+v, want %+v", summary.LastHealth, last)
	}
}

// A failure mid-loop aborts and discards the partial summary.
func TestRunLoop_FailureAborts(t *testing.T) {
	src := &stubSource{
		records: []model.HealthRecord{healthWith(model.DecisionKeep)},
		errs:    []error{nil, nil, oracle.ErrUnavailable},
	}
	sched, j := testScheduler(t, src, time.Millisecond)

	summary, err := sched.RunLoop(context.Background(), "dummy", 5)
	if !errors.Is(err, oracle.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if summary != nil {
		t.Errorf("summary = %+v, want nil on failure", summary)
	}
	// The loop stopped at the failing iteration.
	if j.calls != 2 {
		t.Errorf("job calls = %d, want 2", j.calls)
	}
}

func TestRunLoop_RejectsNonPositiveIterations(t *testing.T) {
	src := &stubSource{records: []model.HealthRecord{healthWith(model.DecisionKeep)}}
	sched, _ := testScheduler(t, src, time.Millisecond)

	for _, n := range []int{0, -1} {
		if _, err := sched.RunLoop(context.Background(), "dummy", n); err == nil {
			t.Errorf("RunLoop accepted n = %d", n)
		}
	}
}
