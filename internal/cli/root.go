package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/kborch/internal/config"
	"github.com/me/kborch/internal/job"
	"github.com/me/kborch/internal/logging"
	"github.com/me/kborch/internal/oracle"
	"github.com/me/kborch/internal/scheduler"
)

// defaultConfigFile is consulted when --config is not given.
const defaultConfigFile = "kborch.yaml"

var (
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the kborch CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kborch",
		Short: "Boundary orchestrator gated by Krypton entropy decisions",
		Long:  "kborch fetches health verdicts from the Krypton entropy oracle and uses them to gate, throttle, or skip job execution.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)

			switch {
			case flagConfig != "":
				var err error
				if cfg, err = config.Load(flagConfig); err != nil {
					return err
				}
			case fileExists(defaultConfigFile):
				var err error
				if cfg, err = config.Load(defaultConfigFile); err != nil {
					return err
				}
			default:
				cfg = config.Default()
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default "+defaultConfigFile+" if present)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newHealthCmd(),
		newRunOnceCmd(),
		newRunLoopCmd(),
		newJobsCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)

	return root
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// newScheduler wires the configured oracle and the built-in jobs together.
func newScheduler() (*scheduler.Scheduler, error) {
	src, err := oracle.New(cfg.Oracle, logger)
	if err != nil {
		return nil, err
	}

	reg := job.NewRegistry(logger)
	reg.Register(job.NewNoopJob("dummy", logger))
	reg.Register(job.NewGatewayJob("gateway", cfg.Jobs.GatewayURL, cfg.Jobs.Source, logger))

	schedCfg := scheduler.Config{ThrottleDelay: cfg.Scheduler.ThrottleDelay.Std()}
	return scheduler.New(src, reg, schedCfg, logger), nil
}

// Exit statuses, one per error kind so scripts can branch on them.
const (
	exitFailure    = 1
	exitOracleDown = 3
	exitBadPayload = 4
	exitUnknownJob = 5
	exitJobFailed  = 6
)

// ExitCode maps an error onto the process exit status for its kind.
func ExitCode(err error) int {
	var payloadErr *oracle.PayloadError
	var unknownJob *job.UnknownJobError
	var jobErr *scheduler.JobExecutionError

	switch {
	case err == nil:
		return 0
	case errors.Is(err, oracle.ErrUnavailable):
		return exitOracleDown
	case errors.Is(err, oracle.ErrMalformed), errors.As(err, &payloadErr):
		return exitBadPayload
	case errors.As(err, &unknownJob):
		return exitUnknownJob
	case errors.As(err, &jobErr):
		return exitJobFailed
	default:
		return exitFailure
	}
}
