package oracle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/me/kborch/internal/config"
	"github.com/me/kborch/pkg/model"
)

// Source fetches one raw oracle verdict and normalizes it.
//
// A Source performs no retries: an unreadable health signal surfaces as an
// error rather than defaulting to a permissive decision, and retry policy
// belongs to the caller.
type Source interface {
	Fetch(ctx context.Context) (model.HealthRecord, error)
}

// New builds the Source selected by cfg.Mode.
func New(cfg config.OracleConfig, logger *slog.Logger) (Source, error) {
	switch cfg.Mode {
	case config.ModeBinary:
		return NewBinarySource(cfg.BinaryPath, cfg.BinaryArgs, cfg.Timeout.Std(), logger), nil
	case config.ModeHTTP:
		return NewHTTPSource(cfg.HTTPURL, cfg.Timeout.Std(), logger), nil
	default:
		return nil, fmt.Errorf("unknown oracle mode %q", cfg.Mode)
	}
}
