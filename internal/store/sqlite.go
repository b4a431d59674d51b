package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/kborch/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a
// Store. Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// CreateRun persists a completed loop run.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.Run) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)

	decisionsJSON, err := json.Marshal(run.Summary.Decisions)
	if err != nil {
		return fmt.Errorf("marshal decisions: %w", err)
	}
	actionsJSON, err := json.Marshal(run.Summary.Actions)
	if err != nil {
		return fmt.Errorf("marshal actions: %w", err)
	}
	healthJSON, err := json.Marshal(run.Summary.LastHealth)
	if err != nil {
		return fmt.Errorf("marshal last health: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, job_id, iterations, decisions, actions, last_health, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.JobID, run.Summary.Iterations,
		string(decisionsJSON), string(actionsJSON), string(healthJSON),
		run.StartedAt.Format(time.RFC3339Nano), run.CompletedAt.Format(time.RFC3339Nano),
	)
	return err
}

// GetRun returns one run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, job_id, iterations, decisions, actions, last_health, started_at, completed_at
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return run, err
}

// ListRuns returns up to limit runs, most recent first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "limit", limit)

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, iterations, decisions, actions, last_health, started_at, completed_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var run model.Run
	var decisionsJSON, actionsJSON, healthJSON string
	var startedAt, completedAt string

	err := row.Scan(&run.ID, &run.JobID, &run.Summary.Iterations,
		&decisionsJSON, &actionsJSON, &healthJSON, &startedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(decisionsJSON), &run.Summary.Decisions); err != nil {
		return nil, fmt.Errorf("unmarshal decisions: %w", err)
	}
	if err := json.Unmarshal([]byte(actionsJSON), &run.Summary.Actions); err != nil {
		return nil, fmt.Errorf("unmarshal actions: %w", err)
	}
	if err := json.Unmarshal([]byte(healthJSON), &run.Summary.LastHealth); err != nil {
		return nil, fmt.Errorf("unmarshal last health: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt); err != nil {
		return nil, fmt.Errorf("parse completed_at: %w", err)
	}
	return &run, nil
}
