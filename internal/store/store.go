package store

import (
	"context"
	"errors"

	"github.com/me/kborch/pkg/model"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Store defines the persistence layer for run history.
type Store interface {
	// CreateRun persists a completed loop run.
	CreateRun(ctx context.Context, run *model.Run) error

	// GetRun returns one run by ID, or ErrNotFound.
	GetRun(ctx context.Context, id string) (*model.Run, error)

	// ListRuns returns up to limit runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]*model.Run, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
