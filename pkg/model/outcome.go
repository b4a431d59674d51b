package model

// Action describes what a scheduler iteration did with its job.
type Action string

const (
	// ActionRan: the decision was Keep and the job executed immediately.
	ActionRan Action = "ran"
	// ActionThrottled: the decision was Throttle; the job still executed,
	// but only after the configured backoff delay.
	ActionThrottled Action = "throttled"
	// ActionSkipped: the decision was Kill and the job never executed.
	ActionSkipped Action = "skipped"
)

// String returns the string representation of the action.
func (a Action) String() string {
	return string(a)
}

// Actions lists all actions an iteration can report.
var Actions = []Action{ActionRan, ActionThrottled, ActionSkipped}

// JobOutcome records the result of one scheduler iteration.
type JobOutcome struct {
	JobID    string       `json:"job_id"`
	Action   Action       `json:"action"`
	Decision Decision     `json:"decision"`
	Health   HealthRecord `json:"health"`
	// JobResult is the opaque value returned by the job. It is only set
	// when the job actually executed (ran or throttled).
	JobResult any `json:"job_result,omitempty"`
}
