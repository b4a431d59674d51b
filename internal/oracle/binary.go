package oracle

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/me/kborch/pkg/model"
)

// BinarySource invokes the oracle binary and parses the JSON it prints.
// The binary may log freely before its verdict; the last stdout line wins.
type BinarySource struct {
	path    string
	args    []string
	timeout time.Duration
	logger  *slog.Logger
}

// NewBinarySource creates a subprocess-backed Source.
func NewBinarySource(path string, args []string, timeout time.Duration, logger *slog.Logger) *BinarySource {
	return &BinarySource{
		path:    path,
		args:    args,
		timeout: timeout,
		logger:  logger.With("component", "oracle", "mode", "binary"),
	}
}

// Fetch runs the binary and normalizes its output. Spawn failures, non-zero
// exits, and timeouts all surface as ErrUnavailable.
func (s *BinarySource) Fetch(ctx context.Context) (model.HealthRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.path, s.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Debug("invoking oracle binary", "path", s.path, "args", s.args)

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return model.HealthRecord{}, fmt.Errorf("%w: %s timed out after %s", ErrUnavailable, s.path, s.timeout)
		}
		return model.HealthRecord{}, fmt.Errorf("%w: run %s: %v (stderr: %s)",
			ErrUnavailable, s.path, err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return model.HealthRecord{}, fmt.Errorf("%w: %s produced no output", ErrUnavailable, s.path)
	}

	lines := strings.Split(out, "\n")
	return Normalize([]byte(lines[len(lines)-1]))
}
