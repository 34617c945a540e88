package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/plan"
)

var templateFuncs = template.FuncMap{
	"isodate": func(t time.Time) string { return t.Format(time.DateOnly) },
	"short":   func(t time.Time) string { return t.Format("01/02") },
	"long":    func(t time.Time) string { return t.Format("Monday, January 02, 2006") },
	"miles":   func(d float64) string { return fmt.Sprintf("%g mi", d) },
	"pct":     func(p float64) string { return fmt.Sprintf("%.1f", p) },
	"color":   func(runType string) string { return plan.StyleFor(runType).Color },
}

type liftRow struct {
	Group    string
	Exercise string
}

// pageData feeds templates/dashboard.html.
type pageData struct {
	*dashboard.Report
	Goal        string
	DisplayWeek int
	LiftRows    []liftRow
	Chart       mileageChart
}

func newPageData(report *dashboard.Report) pageData {
	d := pageData{
		Report:      report,
		Goal:        report.Pace.Goal.String(),
		DisplayWeek: report.Window.DisplayWeek(report.CurrentWeek),
		Chart:       buildMileageChart(report.Mileage, report.CurrentWeek),
	}
	for _, it := range report.Lift.Items() {
		row := liftRow{Group: it.Group.Label(), Exercise: "-"}
		if it.Exercise != nil {
			row.Exercise = *it.Exercise
		}
		d.LiftRows = append(d.LiftRows, row)
	}
	return d
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	if s.page == nil {
		http.NotFound(w, r)
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.svc.GetDashboard(r.Context(), q)
	if err != nil {
		s.metrics.observeDerivation(err, 0, 0)
		s.writeError(w, r, err)
		return
	}
	s.metrics.observeDerivation(nil, len(report.Rows), report.Progress.ProgressPct)

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, newPageData(report)); err != nil {
		s.log.Error("render dashboard", "error", err, "request_id", requestIDFromContext(r.Context()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
