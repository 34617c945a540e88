package mcp

import (
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("trainingdash", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Marathon training plan server. Query the current training week, progress, today's run, long-run pace targets for a goal marathon time, the weekly strength recommendation and weekly mileage. Dates are YYYY-MM-DD; goal times are H:MM:SS."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetDashboard, Handler: h.getDashboard},
		server.ServerTool{Tool: toolGetTrainingProgress, Handler: h.getTrainingProgress},
		server.ServerTool{Tool: toolGetPaceRange, Handler: h.getPaceRange},
		server.ServerTool{Tool: toolGetWeeklyLift, Handler: h.getWeeklyLift},
		server.ServerTool{Tool: toolGetWeekPlan, Handler: h.getWeekPlan},
		server.ServerTool{Tool: toolGetWeeklyMileage, Handler: h.getWeeklyMileage},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resToday, Handler: h.today},
		server.ServerResource{Resource: resPlan, Handler: h.plan},
	)

	return s
}

// HTTPHandler serves s over the streamable HTTP transport.
func HTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s)
}

// ServeStdio serves s over stdin/stdout until EOF.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resToday = mcp.NewResource(
	"trainingdash://today",
	"Today",
	mcp.WithResourceDescription("Today's scheduled run, current week, long-run pace when applicable, weekly lift and quote of the day"),
	mcp.WithMIMEType("application/json"),
)

var resPlan = mcp.NewResource(
	"trainingdash://plan",
	"Training Plan",
	mcp.WithResourceDescription("The full training plan with week numbers"),
	mcp.WithMIMEType("application/json"),
)
