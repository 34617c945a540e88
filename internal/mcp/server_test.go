package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/models"
	"github.com/meltforce/trainingdash/internal/plan"
)

type staticSource struct {
	rows []models.PlanRow
	err  error
}

func (s staticSource) Rows(context.Context) ([]models.PlanRow, error) {
	return s.rows, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestHandlers wires tool handlers to a real service over a 3-week plan.
func newTestHandlers(src staticSource) *handlers {
	ref := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	svc := dashboard.New(src, dashboard.Defaults{Goal: plan.DefaultGoalTime, Reference: &ref}, nil, testLogger())
	return &handlers{ds: svc, log: testLogger()}
}

func threeWeeks() []models.PlanRow {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := make([]models.PlanRow, 21)
	for i := range rows {
		d := start.AddDate(0, 0, i)
		rows[i] = models.PlanRow{Date: d, DayOfWeek: d.Weekday().String(), Distance: 5, RunType: "Easy"}
	}
	return rows
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// TestToolsRegistered verifies New exposes every tool over tools/list.
func TestToolsRegistered(t *testing.T) {
	s := New(newTestHandlers(staticSource{rows: threeWeeks()}).ds, "test", testLogger())
	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"get_dashboard", "get_training_progress", "get_pace_range", "get_weekly_lift", "get_week_plan", "get_weekly_mileage"} {
		if !strings.Contains(string(data), `"`+name+`"`) {
			t.Errorf("tools/list missing %s", name)
		}
	}
}

// TestGetPaceRangeTool verifies the goal argument reaches the derivation.
func TestGetPaceRangeTool(t *testing.T) {
	h := newTestHandlers(staticSource{})
	res, err := h.getPaceRange(context.Background(), callTool(map[string]any{"goal": "3:40:00"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	var pr plan.PaceRange
	if err := json.Unmarshal([]byte(resultText(t, res)), &pr); err != nil {
		t.Fatal(err)
	}
	if pr.Range != "8:53/mi – 9:23/mi" {
		t.Errorf("range = %q", pr.Range)
	}
}

// TestGetWeeklyLiftTool verifies the numeric week argument.
func TestGetWeeklyLiftTool(t *testing.T) {
	h := newTestHandlers(staticSource{rows: threeWeeks()})
	res, err := h.getWeeklyLift(context.Background(), callTool(map[string]any{"week": 3.0}))
	if err != nil {
		t.Fatal(err)
	}
	var l plan.WeeklyLift
	if err := json.Unmarshal([]byte(resultText(t, res)), &l); err != nil {
		t.Fatal(err)
	}
	if l.Week != 3 || l.Legs == nil || *l.Legs != "3x 10 squats" {
		t.Errorf("lift = %+v", l)
	}
}

// TestGetTrainingProgressTool verifies the configured reference date is used by default.
func TestGetTrainingProgressTool(t *testing.T) {
	h := newTestHandlers(staticSource{rows: threeWeeks()})
	res, err := h.getTrainingProgress(context.Background(), callTool(nil))
	if err != nil {
		t.Fatal(err)
	}
	var p dashboard.ProgressReport
	if err := json.Unmarshal([]byte(resultText(t, res)), &p); err != nil {
		t.Fatal(err)
	}
	if p.CurrentWeek != 2 || p.DaysCompleted != 8 || p.DaysTotal != 21 {
		t.Errorf("progress = %+v", p)
	}
}

// TestGetWeekPlanTool verifies a week's rows and total distance.
func TestGetWeekPlanTool(t *testing.T) {
	h := newTestHandlers(staticSource{rows: threeWeeks()})
	res, _ := h.getWeekPlan(context.Background(), callTool(map[string]any{"week": "1"}))
	var wp dashboard.WeekPlan
	if err := json.Unmarshal([]byte(resultText(t, res)), &wp); err != nil {
		t.Fatal(err)
	}
	if wp.Week != 1 || len(wp.Rows) != 7 || wp.Distance != 35 {
		t.Errorf("week plan = %d/%d/%v", wp.Week, len(wp.Rows), wp.Distance)
	}
}

// TestToolArgumentErrors verifies bad arguments become tool errors, not Go errors.
func TestToolArgumentErrors(t *testing.T) {
	h := newTestHandlers(staticSource{rows: threeWeeks()})
	tests := []struct {
		name string
		call func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args map[string]any
		want string
	}{
		{"bad date", h.getDashboard, map[string]any{"date": "tomorrow"}, "invalid date"},
		{"fractional week", h.getWeeklyLift, map[string]any{"week": 1.5}, "whole number"},
		{"bad goal", h.getPaceRange, map[string]any{"goal": "soon"}, "query failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.call(context.Background(), callTool(tt.args))
			if err != nil {
				t.Fatalf("handler returned Go error: %v", err)
			}
			if !res.IsError {
				t.Fatal("expected tool error")
			}
			if got := resultText(t, res); !strings.Contains(got, tt.want) {
				t.Errorf("error text = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestToolSourceError verifies load failures are reported as tool errors.
func TestToolSourceError(t *testing.T) {
	h := newTestHandlers(staticSource{err: errors.New("plan missing")})
	res, err := h.getWeeklyMileage(context.Background(), callTool(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "plan missing") {
		t.Errorf("result = %+v", res)
	}
}

// TestTodayResource verifies the today resource returns JSON for the reference date.
func TestTodayResource(t *testing.T) {
	h := newTestHandlers(staticSource{rows: threeWeeks()})
	var req mcp.ReadResourceRequest
	req.Params.URI = "trainingdash://today"

	contents, err := h.today(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content is %T", contents[0])
	}
	if tc.URI != "trainingdash://today" || tc.MIMEType != "application/json" {
		t.Errorf("resource = %s %s", tc.URI, tc.MIMEType)
	}
	var today dashboard.Today
	if err := json.Unmarshal([]byte(tc.Text), &today); err != nil {
		t.Fatal(err)
	}
	if today.CurrentWeek != 2 || len(today.Rows) != 1 {
		t.Errorf("today = %+v", today)
	}
}

// TestPlanResource verifies the plan resource lists every row.
func TestPlanResource(t *testing.T) {
	h := newTestHandlers(staticSource{rows: threeWeeks()})
	var req mcp.ReadResourceRequest
	req.Params.URI = "trainingdash://plan"

	contents, err := h.plan(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	var rows []plan.WeekRow
	if err := json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 21 || rows[20].Week != 3 {
		t.Errorf("rows = %d", len(rows))
	}
}
