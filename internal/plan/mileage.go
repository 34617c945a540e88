package plan

import (
	"math"
	"sort"
)

// Chart defaults for the weekly mileage view.
const (
	MileageChartMinWeeks = 18
	MileageChartHeadroom = 1.05
	MileageChartEmptyMax = 10
)

// WeekMileage is the scheduled distance for one week.
type WeekMileage struct {
	Week     int     `json:"week"`
	Distance float64 `json:"distance"`
}

// WeeklyMileage is the per-week distance series plus chart axis bounds.
type WeeklyMileage struct {
	Weeks []WeekMileage `json:"weeks"`
	XMin  int           `json:"x_min"`
	XMax  int           `json:"x_max"`
	YMax  int           `json:"y_max"`
}

// SummarizeMileage sums distance per week, ascending by week number.
// The x axis spans at least 18 weeks; the y axis tops out 5% above the
// largest week (10 when there is no data).
func SummarizeMileage(rows []WeekRow) WeeklyMileage {
	totals := make(map[int]float64)
	for _, r := range rows {
		totals[r.Week] += r.Distance
	}

	out := WeeklyMileage{XMin: 1, XMax: MileageChartMinWeeks, YMax: MileageChartEmptyMax}
	if len(totals) == 0 {
		return out
	}

	out.Weeks = make([]WeekMileage, 0, len(totals))
	peak := 0.0
	for w, d := range totals {
		out.Weeks = append(out.Weeks, WeekMileage{Week: w, Distance: d})
		peak = math.Max(peak, d)
	}
	sort.Slice(out.Weeks, func(i, j int) bool { return out.Weeks[i].Week < out.Weeks[j].Week })

	out.XMax = max(out.XMax, out.Weeks[len(out.Weeks)-1].Week)
	out.YMax = int(peak * MileageChartHeadroom)
	return out
}

// Total sums the series.
func (m WeeklyMileage) Total() float64 {
	var t float64
	for _, w := range m.Weeks {
		t += w.Distance
	}
	return t
}
