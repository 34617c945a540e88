package mcp

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/trainingdash/internal/dashboard"
)

// queryFromRequest reads the optional date, goal and week arguments.
func queryFromRequest(req mcp.CallToolRequest) (dashboard.Query, error) {
	q := dashboard.Query{
		Date: req.GetString("date", ""),
		Goal: req.GetString("goal", ""),
	}
	if q.Date != "" {
		if _, err := time.Parse(time.DateOnly, q.Date); err != nil {
			return q, fmt.Errorf("invalid date %q: want YYYY-MM-DD", q.Date)
		}
	}

	raw, ok := req.GetArguments()["week"]
	if !ok || raw == nil {
		return q, nil
	}
	var week int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return q, fmt.Errorf("week must be a whole number, got %v", v)
		}
		week = int(v)
	case int:
		week = v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("week must be a whole number, got %q", v)
		}
		week = n
	default:
		return q, fmt.Errorf("week must be a number")
	}
	q.Week = &week
	return q, nil
}

func toolResult(v any, err error, h *handlers, tool string) (*mcp.CallToolResult, error) {
	if err != nil {
		h.log.Error("mcp "+tool, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Tool definitions ---

var dateArg = mcp.WithString("date", mcp.Description("Reference date (YYYY-MM-DD). Defaults to today or the server's configured date. Dates after the plan ends are clamped to its last day."))

var goalArg = mcp.WithString("goal", mcp.Description("Goal marathon time (H:MM:SS or H:MM). Defaults to the server's configured goal, 3:40:00 unless changed."))

var toolGetDashboard = mcp.NewTool("get_dashboard",
	mcp.WithDescription("Everything the training dashboard shows for a date: current week, progress, long-run pace range, weekly strength recommendation, the next 7 days, weekly mileage and the full plan."),
	dateArg,
	goalArg,
)

var toolGetTrainingProgress = mcp.NewTool("get_training_progress",
	mcp.WithDescription("Training progress as of a date: days completed, total plan days, percent complete and current week."),
	dateArg,
)

var toolGetPaceRange = mcp.NewTool("get_pace_range",
	mcp.WithDescription("Long-run pace range for a goal marathon time: 30 to 60 seconds per mile slower than goal marathon pace."),
	goalArg,
)

var toolGetWeeklyLift = mcp.NewTool("get_weekly_lift",
	mcp.WithDescription("Recommended strength exercises (legs, core, upper body) for a training week. The pick is deterministic per week."),
	mcp.WithNumber("week", mcp.Description("Training week number. Defaults to the current week.")),
	dateArg,
)

var toolGetWeekPlan = mcp.NewTool("get_week_plan",
	mcp.WithDescription("Scheduled runs for one training week with total distance."),
	mcp.WithNumber("week", mcp.Description("Training week number. Defaults to the current week.")),
	dateArg,
)

var toolGetWeeklyMileage = mcp.NewTool("get_weekly_mileage",
	mcp.WithDescription("Total scheduled distance (miles) per training week."),
)

// --- Tool handlers ---

func (h *handlers) getDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := h.ds.GetDashboard(ctx, q)
	return toolResult(report, err, h, "get_dashboard")
}

func (h *handlers) getTrainingProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := h.ds.GetProgress(ctx, q)
	return toolResult(p, err, h, "get_training_progress")
}

func (h *handlers) getPaceRange(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pr, err := h.ds.GetPaceRange(ctx, q)
	return toolResult(pr, err, h, "get_pace_range")
}

func (h *handlers) getWeeklyLift(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l, err := h.ds.GetWeeklyLift(ctx, q)
	return toolResult(l, err, h, "get_weekly_lift")
}

func (h *handlers) getWeekPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	wp, err := h.ds.GetWeekPlan(ctx, q)
	return toolResult(wp, err, h, "get_week_plan")
}

func (h *handlers) getWeeklyMileage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := h.ds.GetWeeklyMileage(ctx, dashboard.Query{})
	return toolResult(m, err, h, "get_weekly_mileage")
}
