package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all kborch tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id           TEXT PRIMARY KEY,
		job_id       TEXT NOT NULL,
		iterations   INTEGER NOT NULL,
		decisions    TEXT NOT NULL,
		actions      TEXT NOT NULL,
		last_health  TEXT NOT NULL,
		started_at   TEXT NOT NULL,
		completed_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_job_id ON runs(job_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
