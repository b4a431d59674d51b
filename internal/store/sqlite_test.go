package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/me/kborch/pkg/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRun(jobID string, startedAt time.Time) *model.Run {
	summary := model.NewTelemetrySummary()
	summary.Record(model.JobOutcome{
		JobID:    jobID,
		Action:   model.ActionRan,
		Decision: model.DecisionKeep,
		Health:   model.HealthRecord{Samples: 2048, Mean: 0.5001, Variance: 0.0039, Jitter: 0.049, Decision: model.DecisionKeep},
	})
	return &model.Run{
		ID:          "run_" + uuid.New().String(),
		JobID:       jobID,
		Summary:     *summary,
		StartedAt:   startedAt,
		CompletedAt: startedAt.Add(time.Second),
	}
}

func TestCreateAndGetRun(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	run := sampleRun("dummy", time.Now().UTC())
	if err := st.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}

	if got.JobID != "dummy" {
		t.Errorf("JobID = %q, want dummy", got.JobID)
	}
	if got.Summary.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", got.Summary.Iterations)
	}
	if got.Summary.Decisions[model.DecisionKeep] != 1 {
		t.Errorf("decisions = %v", got.Summary.Decisions)
	}
	if got.Summary.Actions[model.ActionRan] != 1 {
		t.Errorf("actions = %v", got.Summary.Actions)
	}
	if got.Summary.LastHealth.Samples != 2048 {
		t.Errorf("LastHealth.Samples = %d, want 2048", got.Summary.LastHealth.Samples)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, run.StartedAt)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	st := testStore(t)

	_, err := st.GetRun(context.Background(), "run_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListRuns_MostRecentFirst(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	oldest := sampleRun("dummy", base.Add(-2*time.Hour))
	middle := sampleRun("gateway", base.Add(-time.Hour))
	newest := sampleRun("dummy", base)
	for _, r := range []*model.Run{oldest, middle, newest} {
		if err := st.CreateRun(ctx, r); err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
	}

	runs, err := st.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	if runs[0].ID != newest.ID || runs[2].ID != oldest.ID {
		t.Errorf("runs out of order: %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestListRuns_Limit(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		if err := st.CreateRun(ctx, sampleRun("dummy", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("len(runs) = %d, want 2", len(runs))
	}
}
