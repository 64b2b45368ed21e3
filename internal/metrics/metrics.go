// Package metrics exposes Prometheus instrumentation for the tracking core.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors for the tracking core.
type Metrics struct {
	registry *prometheus.Registry

	LinksCreated   prometheus.Counter
	LinksSkipped   prometheus.Counter
	LinksDeleted   prometheus.Counter
	TreesBuilt     prometheus.Counter
	TreesTruncated prometheus.Counter
	TagChecks      *prometheus.CounterVec

	httpDuration *prometheus.HistogramVec
}

// New creates a metrics bundle with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LinksCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracking_links_created_total",
			Help: "Link rows inserted by bulk creation.",
		}),
		LinksSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracking_links_skipped_total",
			Help: "Bulk creation pairs absorbed as duplicates.",
		}),
		LinksDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracking_links_deleted_total",
			Help: "Link rows removed by explicit deletion.",
		}),
		TreesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracking_trees_built_total",
			Help: "Tree assembly requests served.",
		}),
		TreesTruncated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracking_trees_truncated_total",
			Help: "Tree assemblies whose match set exceeded the row cap.",
		}),
		TagChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_tag_checks_total",
			Help: "Tag validity checks against the catalog, by outcome.",
		}, []string{"outcome"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracking_http_request_duration_seconds",
			Help:    "HTTP request latency by method, path pattern, and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request duration per route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// The route pattern keeps label cardinality bounded; fall back to
		// the raw path for requests that never matched a route.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		m.httpDuration.WithLabelValues(
			r.Method,
			path,
			strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	})
}
