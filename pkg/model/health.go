package model

// Decision is the three-valued verdict carried by a health snapshot.
type Decision string

const (
	DecisionKeep     Decision = "Keep"
	DecisionThrottle Decision = "Throttle"
	DecisionKill     Decision = "Kill"
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	return string(d)
}

// Valid reports whether d is one of the recognized decision literals.
// Matching is case-sensitive: "keep" is not a decision.
func (d Decision) Valid() bool {
	switch d {
	case DecisionKeep, DecisionThrottle, DecisionKill:
		return true
	}
	return false
}

// Decisions lists all recognized decision literals.
var Decisions = []Decision{DecisionKeep, DecisionThrottle, DecisionKill}

// HealthRecord is a normalized oracle health snapshot. Records are only
// produced by oracle normalization, so a record in hand is always complete.
type HealthRecord struct {
	Samples  int      `json:"samples"`
	Mean     float64  `json:"mean"`
	Variance float64  `json:"variance"`
	Jitter   float64  `json:"jitter"`
	Decision Decision `json:"decision"`
}
