package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/trainingdash/internal/dashboard"
)

func (h *handlers) today(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	t, err := h.ds.GetToday(ctx, dashboard.Query{})
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, t)
}

func (h *handlers) plan(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rows, err := h.ds.GetPlan(ctx, dashboard.Query{})
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, rows)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
