package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	derivations    *prometheus.CounterVec
	planRows       prometheus.Gauge
	progressPct    prometheus.Gauge
	validatedPlans *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainingdash_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trainingdash_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"method", "route"},
		),
		derivations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainingdash_derivations_total",
				Help: "Dashboard derivations by outcome",
			},
			[]string{"outcome"},
		),
		planRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainingdash_plan_rows",
			Help: "Rows in the most recently derived plan",
		}),
		progressPct: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainingdash_progress_percent",
			Help: "Training progress as of the most recent dashboard request",
		}),
		validatedPlans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainingdash_plan_validations_total",
				Help: "Uploaded plan validations by result",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.derivations, m.planRows, m.progressPct, m.validatedPlans,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records request count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeDerivation(err error, rows int, pct float64) {
	if m == nil {
		return
	}
	if err != nil {
		m.derivations.WithLabelValues("error").Inc()
		return
	}
	m.derivations.WithLabelValues("ok").Inc()
	m.planRows.Set(float64(rows))
	m.progressPct.Set(pct)
}

func (m *Metrics) observeValidation(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.validatedPlans.WithLabelValues("invalid").Inc()
		return
	}
	m.validatedPlans.WithLabelValues("valid").Inc()
}
