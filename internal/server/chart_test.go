package server

import (
	"strings"
	"testing"

	"github.com/meltforce/trainingdash/internal/plan"
)

// TestBuildMileageChart verifies axis ticks, path points and the current-week marker.
func TestBuildMileageChart(t *testing.T) {
	m := plan.WeeklyMileage{
		Weeks: []plan.WeekMileage{{Week: 1, Distance: 10}, {Week: 2, Distance: 20}},
		XMin:  1, XMax: 18, YMax: 21,
	}
	c := buildMileageChart(m, 2)

	if len(c.XTicks) != 18 {
		t.Errorf("x ticks = %d, want 18", len(c.XTicks))
	}
	if len(c.YTicks) != chartYTicks || c.YTicks[0].Label != "0" || c.YTicks[chartYTicks-1].Label != "21" {
		t.Errorf("y ticks = %+v", c.YTicks)
	}
	if len(c.Points) != 2 {
		t.Fatalf("points = %d", len(c.Points))
	}
	if c.Points[0].X != c.Left {
		t.Errorf("week 1 x = %v, want left edge %v", c.Points[0].X, c.Left)
	}
	if c.Points[1].Y >= c.Points[0].Y {
		t.Error("larger distance should plot higher")
	}
	if !strings.HasPrefix(c.AreaPath, "M") || !strings.HasSuffix(c.AreaPath, "Z") {
		t.Errorf("area path = %q", c.AreaPath)
	}
	if !c.ShowMarker || c.MarkerLabel != "Week 2" {
		t.Errorf("marker = %v %q", c.ShowMarker, c.MarkerLabel)
	}
}

// TestBuildMileageChartEmpty verifies an empty series still yields a usable frame.
func TestBuildMileageChartEmpty(t *testing.T) {
	c := buildMileageChart(plan.WeeklyMileage{XMin: 1, XMax: 18}, 0)
	if c.AreaPath != "" || len(c.Points) != 0 {
		t.Error("empty series should have no path")
	}
	if c.YTicks[chartYTicks-1].Label != "10" {
		t.Errorf("top tick = %q, want fallback 10", c.YTicks[chartYTicks-1].Label)
	}
	if c.ShowMarker {
		t.Error("week 0 is off the chart")
	}
}
