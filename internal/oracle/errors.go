package oracle

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrMalformed: the oracle payload could not be parsed as JSON at all.
	ErrMalformed = errors.New("oracle response is not a JSON object")

	// ErrUnavailable: transport-level failure. The process could not be
	// spawned, exited non-zero, timed out, or the HTTP call failed.
	ErrUnavailable = errors.New("oracle unavailable")
)

// PayloadError reports a payload that parsed but failed validation.
// Field names the offending field when one can be identified.
type PayloadError struct {
	Field  string
	Reason string
}

func (e *PayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid health payload: %s", e.Reason)
	}
	return fmt.Sprintf("invalid health payload: field %q %s", e.Field, e.Reason)
}
