package server

import (
	"fmt"
	"strings"

	"github.com/meltforce/trainingdash/internal/plan"
)

// Mileage chart geometry in SVG user units.
const (
	chartWidth    = 700.0
	chartHeight   = 300.0
	chartLeft     = 48.0
	chartRight    = 16.0
	chartTop      = 16.0
	chartBottom   = 36.0
	chartYTicks   = 5
	chartFallback = 10
)

type chartTick struct {
	Pos   float64
	Label string
}

// mileageChart is a precomputed area chart of weekly distance with a
// marker on the current week.
type mileageChart struct {
	Width, Height          float64
	Left, Right, Top, Base float64
	AreaPath               string
	LinePath               string
	XTicks                 []chartTick
	YTicks                 []chartTick
	MarkerX                float64
	MarkerLabel            string
	ShowMarker             bool
	Points                 []chartPoint
}

type chartPoint struct {
	X, Y     float64
	Week     int
	Distance float64
}

func buildMileageChart(m plan.WeeklyMileage, currentWeek int) mileageChart {
	c := mileageChart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartLeft,
		Right:  chartWidth - chartRight,
		Top:    chartTop,
		Base:   chartHeight - chartBottom,
	}

	xMin, xMax := m.XMin, m.XMax
	if xMax <= xMin {
		xMax = xMin + 1
	}
	yMax := float64(m.YMax)
	if yMax <= 0 {
		yMax = chartFallback
	}

	x := func(week int) float64 {
		return c.Left + float64(week-xMin)/float64(xMax-xMin)*(c.Right-c.Left)
	}
	y := func(d float64) float64 {
		return c.Base - min(d, yMax)/yMax*(c.Base-c.Top)
	}

	for w := xMin; w <= xMax; w++ {
		c.XTicks = append(c.XTicks, chartTick{Pos: x(w), Label: fmt.Sprint(w)})
	}
	for i := 0; i < chartYTicks; i++ {
		v := yMax * float64(i) / float64(chartYTicks-1)
		c.YTicks = append(c.YTicks, chartTick{Pos: y(v), Label: fmt.Sprintf("%.0f", v)})
	}

	var line strings.Builder
	for _, wk := range m.Weeks {
		if wk.Week < xMin || wk.Week > xMax {
			continue
		}
		p := chartPoint{X: x(wk.Week), Y: y(wk.Distance), Week: wk.Week, Distance: wk.Distance}
		c.Points = append(c.Points, p)
		if line.Len() == 0 {
			fmt.Fprintf(&line, "M%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&line, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	if len(c.Points) > 0 {
		c.LinePath = line.String()
		first, last := c.Points[0], c.Points[len(c.Points)-1]
		c.AreaPath = fmt.Sprintf("M%.1f,%.1f %s L%.1f,%.1f Z",
			first.X, c.Base, strings.Replace(c.LinePath, "M", "L", 1), last.X, c.Base)
	}

	if currentWeek >= xMin && currentWeek <= xMax {
		c.ShowMarker = true
		c.MarkerX = x(currentWeek)
		c.MarkerLabel = fmt.Sprintf("Week %d", currentWeek)
	}
	return c
}
