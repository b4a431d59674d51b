package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/me/kborch/internal/config"
	"github.com/me/kborch/internal/job"
	"github.com/me/kborch/internal/logging"
	"github.com/me/kborch/internal/metrics"
	"github.com/me/kborch/internal/oracle"
	"github.com/me/kborch/internal/scheduler"
	"github.com/me/kborch/internal/server"
	"github.com/me/kborch/internal/store"
)

func main() {
	cfg := config.Default()

	configFile := flag.String("config", "", "Path to config file")
	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "Listen address")
	flag.StringVar(&cfg.Server.LogLevel, "log-level", cfg.Server.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.Server.LogFormat, "log-format", cfg.Server.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.Server.DBPath, "db", cfg.Server.DBPath, "Database path (default ~/.kborch/kborch.db)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		// Flags passed after --config still win.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "addr":
				cfg.Server.Addr = f.Value.String()
			case "log-level":
				cfg.Server.LogLevel = f.Value.String()
			case "log-format":
				cfg.Server.LogFormat = f.Value.String()
			case "db":
				cfg.Server.DBPath = f.Value.String()
			}
		})
	}

	if *debug {
		cfg.Server.LogLevel = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Server.LogLevel), cfg.Server.LogFormat)

	// Resolve database path.
	dbPath := cfg.Server.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".kborch")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "kborch.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	// Oracle source.
	src, err := oracle.New(cfg.Oracle, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configure oracle: %v\n", err)
		os.Exit(1)
	}
	logger.Info("oracle configured", "mode", cfg.Oracle.Mode)

	// Job registry with the built-in jobs.
	reg := job.NewRegistry(logger)
	reg.Register(job.NewNoopJob("dummy", logger))
	reg.Register(job.NewGatewayJob("gateway", cfg.Jobs.GatewayURL, cfg.Jobs.Source, logger))

	// Metrics and scheduler.
	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	schedCfg := scheduler.Config{ThrottleDelay: cfg.Scheduler.ThrottleDelay.Std()}
	sched := scheduler.New(src, reg, schedCfg, logger, scheduler.WithMetrics(m))

	srv := server.New(cfg, src, sched, reg, st, logger, server.WithPrometheusRegistry(promReg))

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
