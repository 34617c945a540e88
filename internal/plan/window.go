package plan

import (
	"fmt"
	"time"

	"github.com/meltforce/trainingdash/internal/models"
)

const secondsPerDay = 24 * 60 * 60

// Day truncates t to its calendar date, expressed as midnight UTC.
// The year/month/day are taken in t's own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative if b is before a).
// It works on Unix seconds, so spans beyond time.Duration's range stay exact.
func DaysBetween(a, b time.Time) int {
	return int((Day(b).Unix() - Day(a).Unix()) / secondsPerDay)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Window is the date span covered by a plan.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow returns the min/max date across rows.
func NewWindow(rows []models.PlanRow) (Window, error) {
	if len(rows) == 0 {
		return Window{}, ErrEmptyPlan
	}
	w := Window{Start: Day(rows[0].Date), End: Day(rows[0].Date)}
	for _, r := range rows[1:] {
		d := Day(r.Date)
		if d.Before(w.Start) {
			w.Start = d
		}
		if d.After(w.End) {
			w.End = d
		}
	}
	return w, nil
}

// TotalDays counts the days in the window, inclusive of both endpoints.
func (w Window) TotalDays() int {
	return DaysBetween(w.Start, w.End) + 1
}

// Contains reports whether d falls within [Start, End].
func (w Window) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Clamp moves d into [Start, End].
func (w Window) Clamp(d time.Time) time.Time {
	d = Day(d)
	if d.Before(w.Start) {
		return w.Start
	}
	if d.After(w.End) {
		return w.End
	}
	return d
}

// LastWeek is the week number of the window's final day.
func (w Window) LastWeek() int {
	return WeekOf(w.End, w.Start)
}

// Progress is shorthand for Progress(ref, w.Start, w.End).
func (w Window) Progress(ref time.Time) (ProgressSnapshot, error) {
	return Progress(ref, w.Start, w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
}
