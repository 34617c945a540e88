package plan

import (
	"time"

	"github.com/meltforce/trainingdash/internal/models"
)

// WeekRow is a plan row with its 1-indexed week number.
type WeekRow struct {
	models.PlanRow
	Week int `json:"week"`
}

// WeekOf returns floor((d - start).days / 7) + 1. Dates before start
// produce week numbers <= 0.
func WeekOf(d, start time.Time) int {
	return floorDiv(DaysBetween(start, d), 7) + 1
}

// AssignWeeks numbers each row relative to start. start must be the full
// plan's first day even when rows is only a slice of the plan (for example
// a rolling 7-day view); numbering never restarts at the slice boundary.
func AssignWeeks(rows []models.PlanRow, start time.Time) []WeekRow {
	out := make([]WeekRow, len(rows))
	for i, r := range rows {
		r.Date = Day(r.Date)
		out[i] = WeekRow{PlanRow: r, Week: WeekOf(r.Date, start)}
	}
	return out
}

// CurrentWeek is the week containing ref. It is not clamped: a reference
// date before the plan starts yields 0 or a negative number.
func CurrentWeek(ref, start time.Time) int {
	return WeekOf(ref, start)
}

// DisplayWeek clamps a week number to [1, w.LastWeek()] for display.
func (w Window) DisplayWeek(week int) int {
	return max(1, min(week, w.LastWeek()))
}

// RowsInWeek filters rows down to one week number.
func RowsInWeek(rows []WeekRow, week int) []WeekRow {
	var out []WeekRow
	for _, r := range rows {
		if r.Week == week {
			out = append(out, r)
		}
	}
	return out
}
