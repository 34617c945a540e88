package server

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/ingest"
	"golang.org/x/time/rate"
)

// uploadBurst is how many plan validations may arrive back to back
// before the one-per-second refill applies.
const uploadBurst = 5

// PlanValidator checks an uploaded plan without serving it.
type PlanValidator interface {
	Validate(ctx context.Context, r io.Reader) (*ingest.Result, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc       *dashboard.Service
	validator PlanValidator
	metrics   *Metrics
	log       *slog.Logger
	router    chi.Router
	uploads   *rate.Limiter
	page      *template.Template
}

// New creates a new Server with all routes configured. metrics may be nil.
func New(svc *dashboard.Service, validator PlanValidator, metrics *Metrics, log *slog.Logger) *Server {
	s := &Server{
		svc:       svc,
		validator: validator,
		metrics:   metrics,
		log:       log,
		router:    chi.NewRouter(),
		uploads:   rate.NewLimiter(rate.Every(time.Second), uploadBurst),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/", s.handleDashboardPage)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/plan", s.handlePlan)
		r.Get("/plan/week", s.handleWeekPlan)
		r.With(RateLimit(s.uploads)).Post("/plan/validate", s.handleValidatePlan)
		r.Get("/progress", s.handleProgress)
		r.Get("/pace", s.handlePace)
		r.Get("/lift", s.handleLift)
		r.Get("/mileage", s.handleMileage)
		r.Get("/today", s.handleToday)
		r.Get("/settings", s.handleSettings)
	})
}

// SetWeb parses the dashboard template and mounts static assets from webFS,
// which must contain templates/dashboard.html and static/.
func (s *Server) SetWeb(webFS fs.FS) error {
	page, err := template.New("dashboard.html").Funcs(templateFuncs).ParseFS(webFS, "templates/dashboard.html")
	if err != nil {
		return fmt.Errorf("parsing dashboard template: %w", err)
	}
	s.page = page

	static, err := fs.Sub(webFS, "static")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	return nil
}

// SetMCP mounts a streamable-HTTP MCP handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}
