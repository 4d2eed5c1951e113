// Package metrics exposes Prometheus instrumentation for the HTTP bridge and
// the key-value backends.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronotours_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route"})

	httpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronotours_http_errors_total",
		Help: "Total number of HTTP requests resulting in server errors.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chronotours_http_request_duration_seconds",
		Help:    "Histogram of latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	persistenceLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chronotours_persistence_latency_seconds",
		Help:    "Histogram of key-value store operation latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})

	persistenceErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronotours_persistence_errors_total",
		Help: "Total number of failed key-value store operations.",
	}, []string{"backend", "operation"})
)

// Middleware records request counts and latencies labelled by chi route
// pattern, so ids in paths do not explode label cardinality.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// The route pattern is only complete once routing has run.
			route := routePattern(r)
			status := ww.Status()
			statusCode := strconv.Itoa(status)

			httpRequestsTotal.WithLabelValues(r.Method, route).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route, statusCode).Observe(time.Since(start).Seconds())
			if status >= http.StatusInternalServerError {
				httpErrorsTotal.WithLabelValues(r.Method, route, statusCode).Inc()
			}
		})
	}
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePersistence records the latency of one key-value operation and
// counts it as failed when err is non-nil.
func ObservePersistence(backend, operation string, start time.Time, err error) {
	persistenceLatency.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		persistenceErrorsTotal.WithLabelValues(backend, operation).Inc()
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
