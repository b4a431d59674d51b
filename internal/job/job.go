package job

import "context"

// Job is an opaque unit of work executed under a gating decision.
// Jobs carry no state between invocations.
type Job interface {
	// ID returns the identifier jobs are registered and resolved by.
	ID() string

	// Execute runs the job and returns its opaque result.
	Execute(ctx context.Context) (any, error)
}
