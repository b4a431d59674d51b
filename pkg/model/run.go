package model

import "time"

// Run is a persisted record of one completed scheduler loop.
// Runs are written only after the loop finished all its iterations, so a
// stored run is always a complete aggregate, never a truncated one.
type Run struct {
	ID          string           `json:"id"`
	JobID       string           `json:"job_id"`
	Summary     TelemetrySummary `json:"summary"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at"`
}
