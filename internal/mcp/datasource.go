package mcp

import (
	"context"

	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/plan"
)

// DataSource abstracts the data layer for MCP tools. Both *dashboard.Service
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	GetDashboard(ctx context.Context, q dashboard.Query) (*dashboard.Report, error)
	GetProgress(ctx context.Context, q dashboard.Query) (*dashboard.ProgressReport, error)
	GetPaceRange(ctx context.Context, q dashboard.Query) (*plan.PaceRange, error)
	GetWeeklyLift(ctx context.Context, q dashboard.Query) (*plan.WeeklyLift, error)
	GetWeekPlan(ctx context.Context, q dashboard.Query) (*dashboard.WeekPlan, error)
	GetPlan(ctx context.Context, q dashboard.Query) ([]plan.WeekRow, error)
	GetWeeklyMileage(ctx context.Context, q dashboard.Query) (*plan.WeeklyMileage, error)
	GetToday(ctx context.Context, q dashboard.Query) (*dashboard.Today, error)
}

// Compile-time check: *dashboard.Service satisfies DataSource.
var _ DataSource = (*dashboard.Service)(nil)
