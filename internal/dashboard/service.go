// Package dashboard resolves request parameters against the loaded plan and
// runs the plan derivations. The HTTP server, the MCP tools and the CLI all
// go through a Service.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meltforce/trainingdash/internal/models"
	"github.com/meltforce/trainingdash/internal/plan"
	"github.com/meltforce/trainingdash/internal/quote"
)

// ErrPlanUnavailable means the served plan could not be loaded. It is
// joined with the underlying cause, which may itself be a validation error
// in the plan file.
var ErrPlanUnavailable = errors.New("plan unavailable")

// PlanSource supplies the current plan rows.
type PlanSource interface {
	Rows(ctx context.Context) ([]models.PlanRow, error)
}

// Defaults apply when a query leaves a field empty.
type Defaults struct {
	Goal        plan.GoalTime
	Reference   *time.Time
	RollingDays int
}

// Query selects what to derive. Empty fields fall back to Defaults.
type Query struct {
	Date string `json:"date,omitempty"`
	Goal string `json:"goal,omitempty"`
	Week *int   `json:"week,omitempty"`
}

// Report is the dashboard plus the quote of the day.
type Report struct {
	*plan.Dashboard
	Quote quote.Quote `json:"quote"`
}

// ProgressReport is the progress snapshot with week context.
type ProgressReport struct {
	plan.ProgressSnapshot
	CurrentWeek int `json:"current_week"`
	DisplayWeek int `json:"display_week"`
	TotalWeeks  int `json:"total_weeks"`
}

// WeekPlan is every row scheduled in one week.
type WeekPlan struct {
	Week     int            `json:"week"`
	Rows     []plan.WeekRow `json:"rows"`
	Distance float64        `json:"distance"`
}

// Today is what is scheduled on the reference date.
type Today struct {
	Date        time.Time       `json:"date"`
	CurrentWeek int             `json:"current_week"`
	Rows        []plan.WeekRow  `json:"rows"`
	Pace        *plan.PaceRange `json:"pace,omitempty"`
	Lift        plan.WeeklyLift `json:"lift"`
	Quote       quote.Quote     `json:"quote"`
}

// Service answers dashboard queries over a PlanSource.
type Service struct {
	src      PlanSource
	defaults Defaults
	quotes   *quote.Book
	lift     *plan.LiftSelector
	log      *slog.Logger
	now      func() time.Time
}

// New creates a Service. A nil quotes uses the embedded catalog.
func New(src PlanSource, defaults Defaults, quotes *quote.Book, log *slog.Logger) *Service {
	if quotes == nil {
		quotes = quote.Default()
	}
	if defaults.RollingDays <= 0 {
		defaults.RollingDays = plan.DefaultRollingDays
	}
	return &Service{
		src:      src,
		defaults: defaults,
		quotes:   quotes,
		lift:     plan.NewLiftSelector(plan.DefaultLiftCatalog),
		log:      log,
		now:      time.Now,
	}
}

// Defaults returns the configured fallbacks.
func (s *Service) Defaults() Defaults {
	return s.defaults
}

// reference resolves the query date, the configured date, or today. An
// explicit query date is returned as given; fallback reports whether a
// default was used instead.
func (s *Service) reference(q Query) (ref time.Time, fallback bool, err error) {
	if d := strings.TrimSpace(q.Date); d != "" {
		t, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("date %q: want YYYY-MM-DD: %w", d, plan.ErrValidation)
		}
		return t, false, nil
	}
	if s.defaults.Reference != nil {
		return plan.Day(*s.defaults.Reference), true, nil
	}
	return plan.Day(s.now()), true, nil
}

// clampDefault moves a fallback reference into the plan window. Explicit
// query dates keep their out-of-range meaning.
func (s *Service) clampDefault(ref time.Time, rows []models.PlanRow) time.Time {
	w, err := plan.NewWindow(rows)
	if err != nil || w.Contains(ref) {
		return ref
	}
	clamped := w.Clamp(ref)
	s.log.Debug("default reference outside plan",
		"reference", ref.Format(time.DateOnly), "window", w.String(), "clamped", clamped.Format(time.DateOnly))
	return clamped
}

func (s *Service) goal(q Query) (plan.GoalTime, error) {
	if strings.TrimSpace(q.Goal) == "" {
		return s.defaults.Goal, nil
	}
	return plan.ParseGoalTime(q.Goal)
}

func (s *Service) derive(ctx context.Context, q Query) (*plan.Dashboard, error) {
	ref, fallback, err := s.reference(q)
	if err != nil {
		return nil, err
	}
	goal, err := s.goal(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w: %w", ErrPlanUnavailable, err)
	}
	if fallback {
		ref = s.clampDefault(ref, rows)
	}
	d, err := plan.Derive(rows, plan.Options{
		Reference:   ref,
		Goal:        goal,
		RollingDays: s.defaults.RollingDays,
		Lift:        s.lift,
	})
	if err != nil {
		return nil, fmt.Errorf("deriving dashboard: %w", err)
	}
	return d, nil
}

// GetDashboard derives the full dashboard.
func (s *Service) GetDashboard(ctx context.Context, q Query) (*Report, error) {
	d, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	return &Report{Dashboard: d, Quote: s.quotes.For(d.ReferenceDate)}, nil
}

// GetPlan returns every row with its week number, or only q.Week's rows when set.
func (s *Service) GetPlan(ctx context.Context, q Query) ([]plan.WeekRow, error) {
	d, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.Week == nil {
		return d.Rows, nil
	}
	return plan.RowsInWeek(d.Rows, *q.Week), nil
}

// GetWeekPlan returns one week of the plan. Without q.Week it is the
// current week, clamped into the plan.
func (s *Service) GetWeekPlan(ctx context.Context, q Query) (*WeekPlan, error) {
	d, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	week := d.Window.DisplayWeek(d.CurrentWeek)
	if q.Week != nil {
		week = *q.Week
	}
	wp := &WeekPlan{Week: week, Rows: plan.RowsInWeek(d.Rows, week)}
	for _, r := range wp.Rows {
		wp.Distance += r.Distance
	}
	return wp, nil
}

// GetProgress returns progress as of the reference date.
func (s *Service) GetProgress(ctx context.Context, q Query) (*ProgressReport, error) {
	d, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ProgressReport{
		ProgressSnapshot: d.Progress,
		CurrentWeek:      d.CurrentWeek,
		DisplayWeek:      d.Window.DisplayWeek(d.CurrentWeek),
		TotalWeeks:       d.TotalWeeks,
	}, nil
}

// GetPaceRange derives the long-run pace band. It needs no plan.
func (s *Service) GetPaceRange(_ context.Context, q Query) (*plan.PaceRange, error) {
	goal, err := s.goal(q)
	if err != nil {
		return nil, err
	}
	pr := plan.NewPaceRange(goal)
	return &pr, nil
}

// GetWeeklyLift returns the strength pick for q.Week, or for the
// reference date's week when unset.
func (s *Service) GetWeeklyLift(ctx context.Context, q Query) (*plan.WeeklyLift, error) {
	if q.Week != nil {
		l := s.lift.Select(*q.Week)
		return &l, nil
	}
	d, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	return &d.Lift, nil
}

// GetWeeklyMileage returns distance per week and chart bounds.
func (s *Service) GetWeeklyMileage(ctx context.Context, q Query) (*plan.WeeklyMileage, error) {
	d, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	return &d.Mileage, nil
}

// GetToday returns the reference date's runs. The pace band is included
// when one of them is a long run.
func (s *Service) GetToday(ctx context.Context, q Query) (*Today, error) {
	d, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	t := &Today{
		Date:        d.ReferenceDate,
		CurrentWeek: d.CurrentWeek,
		Rows:        d.Today,
		Lift:        d.Lift,
		Quote:       s.quotes.For(d.ReferenceDate),
	}
	if t.Rows == nil {
		t.Rows = []plan.WeekRow{}
	}
	for _, r := range d.Today {
		if plan.IsLongRun(r.RunType) {
			pace := d.Pace
			t.Pace = &pace
			break
		}
	}
	return t, nil
}
