package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/plan"
)

// maxPlanUpload bounds POST /api/v1/plan/validate bodies.
const maxPlanUpload = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows, err := s.svc.GetPlan(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleWeekPlan(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	wp, err := s.svc.GetWeekPlan(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wp)
}

func (s *Server) handleValidatePlan(w http.ResponseWriter, r *http.Request) {
	result, err := s.validator.Validate(r.Context(), http.MaxBytesReader(w, r.Body, maxPlanUpload))
	s.metrics.observeValidation(err)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "plan exceeds 1 MiB"})
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.GetProgress(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePace(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pr, err := s.svc.GetPaceRange(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

func (s *Server) handleLift(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.svc.GetWeeklyLift(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleMileage(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.svc.GetWeeklyMileage(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.svc.GetToday(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrPlanUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, plan.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, plan.ErrEmptyPlan):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", requestIDFromContext(r.Context()),
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseQuery reads date, goal and week from the query string.
func parseQuery(r *http.Request) (dashboard.Query, error) {
	v := r.URL.Query()
	q := dashboard.Query{
		Date: strings.TrimSpace(v.Get("date")),
		Goal: strings.TrimSpace(v.Get("goal")),
	}
	if ws := strings.TrimSpace(v.Get("week")); ws != "" {
		week, err := strconv.Atoi(ws)
		if err != nil {
			return q, fmt.Errorf("week %q: not an integer: %w", ws, plan.ErrValidation)
		}
		q.Week = &week
	}
	return q, nil
}
