package cli

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/me/kborch/internal/store"
	"github.com/me/kborch/pkg/model"
)

func newRunLoopCmd() *cobra.Command {
	var jobID string
	var iterations int
	var persist bool

	cmd := &cobra.Command{
		Use:   "run-loop",
		Short: "Run repeated gated iterations and print the telemetry summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := newScheduler()
			if err != nil {
				return err
			}
			if jobID == "" {
				jobID = cfg.Scheduler.DefaultJob
			}

			startedAt := time.Now().UTC()
			summary, err := sched.RunLoop(cmd.Context(), jobID, iterations)
			if err != nil {
				return err
			}

			if persist {
				run := &model.Run{
					ID:          "run_" + uuid.New().String(),
					JobID:       jobID,
					Summary:     *summary,
					StartedAt:   startedAt,
					CompletedAt: time.Now().UTC(),
				}
				if err := saveRun(cmd.Context(), run); err != nil {
					return err
				}
				logger.Info("run persisted", "id", run.ID)
			}

			return printJSON(cmd, summary)
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job identifier (default from config)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 1, "Number of iterations (must be positive)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Record the completed run in the history database")

	return cmd
}

func saveRun(ctx context.Context, run *model.Run) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	return st.CreateRun(ctx, run)
}

func openStore() (store.Store, error) {
	path, err := resolveDBPath(cfg.Server.DBPath)
	if err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(path, logger)
}
