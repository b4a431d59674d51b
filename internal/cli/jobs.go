package cli

import (
	"github.com/spf13/cobra"

	"github.com/me/kborch/internal/job"
)

func newJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the registered jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := job.NewRegistry(logger)
			reg.Register(job.NewNoopJob("dummy", logger))
			reg.Register(job.NewGatewayJob("gateway", cfg.Jobs.GatewayURL, cfg.Jobs.Source, logger))

			return printJSON(cmd, map[string]any{
				"jobs":    reg.IDs(),
				"default": cfg.Scheduler.DefaultJob,
			})
		},
	}
}
