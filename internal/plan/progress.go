package plan

import (
	"fmt"
	"math"
	"time"
)

// ProgressSnapshot describes how far into the plan a reference date is.
type ProgressSnapshot struct {
	ReferenceDate time.Time `json:"reference_date"`
	DaysCompleted int       `json:"days_completed"`
	DaysTotal     int       `json:"days_total"`
	ProgressPct   float64   `json:"progress_pct"`
}

// Progress computes completion for ref within [start, end].
//
// The reference day itself counts as completed, so the first day of the plan
// reads as 1/DaysTotal and the last day as exactly 100%. ref is clamped to
// end; a ref before start reads as 0 days completed. DaysTotal counts both
// endpoints.
func Progress(ref, start, end time.Time) (ProgressSnapshot, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return ProgressSnapshot{}, fmt.Errorf("window %s..%s: %w",
			start.Format(time.DateOnly), end.Format(time.DateOnly), ErrEmptyPlan)
	}

	ref = Day(ref)
	if ref.After(end) {
		ref = end
	}

	total := DaysBetween(start, end) + 1
	completed := max(0, DaysBetween(start, ref)+1)

	pct := math.Min(100, roundTenths(float64(completed)*100/float64(total)))
	return ProgressSnapshot{
		ReferenceDate: ref,
		DaysCompleted: completed,
		DaysTotal:     total,
		ProgressPct:   pct,
	}, nil
}

// roundTenths rounds half to even at one decimal place.
func roundTenths(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
