package ports

import "time"

// Hooks for planning metrics. Implementations must be safe for concurrent use.
type PlannerMetrics interface {
	ObservePlan(outcome string, d time.Duration)
	ObserveUpstream(op string, err error, d time.Duration)
	ObserveSegment(status string, hours float64)
}
