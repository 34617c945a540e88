package plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/meltforce/trainingdash/internal/models"
)

// Options controls one dashboard derivation.
type Options struct {
	Reference   time.Time
	Goal        GoalTime
	RollingDays int
	Lift        *LiftSelector
}

// Dashboard bundles every value the presentation layers show.
type Dashboard struct {
	ReferenceDate time.Time        `json:"reference_date"`
	Window        Window           `json:"window"`
	CurrentWeek   int              `json:"current_week"`
	TotalWeeks    int              `json:"total_weeks"`
	Progress      ProgressSnapshot `json:"progress"`
	Pace          PaceRange        `json:"pace"`
	Lift          WeeklyLift       `json:"lift"`
	Today         []WeekRow        `json:"today"`
	Days          []DayTile        `json:"days"`
	Mileage       WeeklyMileage    `json:"mileage"`
	Rows          []WeekRow        `json:"rows"`
}

// SortRows returns a copy of rows ordered by date with dates normalized.
func SortRows(rows []models.PlanRow) []models.PlanRow {
	out := make([]models.PlanRow, len(rows))
	for i, r := range rows {
		r.Date = Day(r.Date)
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Derive recomputes the full dashboard for opts.Reference. A reference after
// the plan ends is clamped to the last day; one before the plan starts is
// kept and yields 0% progress and a non-positive current week.
func Derive(rows []models.PlanRow, opts Options) (*Dashboard, error) {
	window, err := NewWindow(rows)
	if err != nil {
		return nil, err
	}

	ref := Day(opts.Reference)
	if ref.After(window.End) {
		ref = window.End
	}

	progress, err := window.Progress(ref)
	if err != nil {
		return nil, fmt.Errorf("computing progress: %w", err)
	}

	selector := opts.Lift
	if selector == nil {
		selector = defaultSelector
	}
	n := opts.RollingDays
	if n <= 0 {
		n = DefaultRollingDays
	}

	weekRows := AssignWeeks(SortRows(rows), window.Start)
	week := CurrentWeek(ref, window.Start)

	var today []WeekRow
	for _, r := range weekRows {
		if r.Date.Equal(ref) {
			today = append(today, r)
		}
	}

	return &Dashboard{
		ReferenceDate: ref,
		Window:        window,
		CurrentWeek:   week,
		TotalWeeks:    window.LastWeek(),
		Progress:      progress,
		Pace:          NewPaceRange(opts.Goal),
		Lift:          selector.Select(week),
		Today:         today,
		Days:          RollingWindow(ref, weekRows, n),
		Mileage:       SummarizeMileage(weekRows),
		Rows:          weekRows,
	}, nil
}
