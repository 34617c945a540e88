package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/plan"
)

// HTTPClient implements DataSource by calling the trainingdash REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the plan lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func queryParams(q dashboard.Query) url.Values {
	v := url.Values{}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	if q.Goal != "" {
		v.Set("goal", q.Goal)
	}
	if q.Week != nil {
		v.Set("week", strconv.Itoa(*q.Week))
	}
	return v
}

func (c *HTTPClient) GetDashboard(ctx context.Context, q dashboard.Query) (*dashboard.Report, error) {
	var r dashboard.Report
	if err := c.get(ctx, "/api/v1/dashboard", queryParams(q), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) GetProgress(ctx context.Context, q dashboard.Query) (*dashboard.ProgressReport, error) {
	var p dashboard.ProgressReport
	if err := c.get(ctx, "/api/v1/progress", queryParams(q), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetPaceRange(ctx context.Context, q dashboard.Query) (*plan.PaceRange, error) {
	var pr plan.PaceRange
	if err := c.get(ctx, "/api/v1/pace", queryParams(q), &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

func (c *HTTPClient) GetWeeklyLift(ctx context.Context, q dashboard.Query) (*plan.WeeklyLift, error) {
	var l plan.WeeklyLift
	if err := c.get(ctx, "/api/v1/lift", queryParams(q), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *HTTPClient) GetWeekPlan(ctx context.Context, q dashboard.Query) (*dashboard.WeekPlan, error) {
	var wp dashboard.WeekPlan
	if err := c.get(ctx, "/api/v1/plan/week", queryParams(q), &wp); err != nil {
		return nil, err
	}
	return &wp, nil
}

func (c *HTTPClient) GetPlan(ctx context.Context, q dashboard.Query) ([]plan.WeekRow, error) {
	var rows []plan.WeekRow
	if err := c.get(ctx, "/api/v1/plan", queryParams(q), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) GetWeeklyMileage(ctx context.Context, q dashboard.Query) (*plan.WeeklyMileage, error) {
	var m plan.WeeklyMileage
	if err := c.get(ctx, "/api/v1/mileage", queryParams(q), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) GetToday(ctx context.Context, q dashboard.Query) (*dashboard.Today, error) {
	var t dashboard.Today
	if err := c.get(ctx, "/api/v1/today", queryParams(q), &t); err != nil {
		return nil, err
	}
	return &t, nil
}
