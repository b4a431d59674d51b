package job

import (
	"fmt"
	"log/slog"
	"sort"
)

// UnknownJobError is returned by Resolve for an unregistered identifier.
type UnknownJobError struct {
	ID string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job %q", e.ID)
}

// Registry maps job identifiers to their Job implementations.
// Registration happens at startup before concurrent access, so no mutex is
// needed; afterwards the registry is read-only and safe to share.
type Registry struct {
	jobs   map[string]Job
	logger *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		jobs:   make(map[string]Job),
		logger: logger.With("component", "job-registry"),
	}
}

// Register adds a Job to the registry, keyed by its ID().
// The last registration for a given identifier wins.
func (r *Registry) Register(j Job) {
	id := j.ID()
	r.jobs[id] = j
	r.logger.Info("job registered", "id", id)
}

// Resolve returns the Job for the given identifier.
func (r *Registry) Resolve(id string) (Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, &UnknownJobError{ID: id}
	}
	return j, nil
}

// IDs returns the registered job identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.jobs))
	for id := range r.jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
