package cli

import (
	"github.com/spf13/cobra"

	"github.com/me/kborch/internal/oracle"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Fetch a single oracle health snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := oracle.New(cfg.Oracle, logger)
			if err != nil {
				return err
			}

			health, err := src.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{
				"samples":  health.Samples,
				"mean":     health.Mean,
				"variance": health.Variance,
				"jitter":   health.Jitter,
				"decision": health.Decision,
			})
		},
	}
}
