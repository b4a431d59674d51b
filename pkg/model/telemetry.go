package model

// TelemetrySummary aggregates the outcomes of one scheduler loop.
// It is owned by the single loop invocation that created it and is not safe
// for concurrent mutation; sequential iteration is what keeps it consistent.
type TelemetrySummary struct {
	Iterations int              `json:"iterations"`
	Decisions  map[Decision]int `json:"decisions"`
	Actions    map[Action]int   `json:"actions"`
	LastHealth HealthRecord     `json:"last_health"`
}

// NewTelemetrySummary returns a summary with every decision and action
// counter present and zeroed, so callers can read counts without nil checks.
func NewTelemetrySummary() *TelemetrySummary {
	s := &TelemetrySummary{
		Decisions: make(map[Decision]int, len(Decisions)),
		Actions:   make(map[Action]int, len(Actions)),
	}
	for _, d := range Decisions {
		s.Decisions[d] = 0
	}
	for _, a := range Actions {
		s.Actions[a] = 0
	}
	return s
}

// Record folds one iteration outcome into the summary.
func (s *TelemetrySummary) Record(out JobOutcome) {
	s.Iterations++
	s.Decisions[out.Decision]++
	s.Actions[out.Action]++
	s.LastHealth = out.Health
}
