package cli

import (
	"github.com/spf13/cobra"
)

func newRunOnceCmd() *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "run-once",
		Short: "Run one gated scheduler iteration around a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := newScheduler()
			if err != nil {
				return err
			}
			if jobID == "" {
				jobID = cfg.Scheduler.DefaultJob
			}

			outcome, err := sched.RunIteration(cmd.Context(), jobID)
			if err != nil {
				return err
			}

			// Health fields flattened alongside the action, matching the
			// health command's output.
			return printJSON(cmd, map[string]any{
				"samples":  outcome.Health.Samples,
				"mean":     outcome.Health.Mean,
				"variance": outcome.Health.Variance,
				"jitter":   outcome.Health.Jitter,
				"decision": outcome.Decision,
				"action":   outcome.Action,
			})
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job identifier (default from config)")

	return cmd
}
