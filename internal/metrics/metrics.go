// Package metrics exposes Prometheus instrumentation for the API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpsite_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "corpsite_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	contentPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpsite_content_published_total",
		Help: "Count of content items moved to a publicly visible status",
	}, []string{"kind"})

	mediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpsite_media_uploads_total",
		Help: "Count of media uploads by storage backend and result",
	}, []string{"backend", "result"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpsite_login_attempts_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "corpsite_active_sessions",
		Help: "Approximate number of live dashboard sessions",
	})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObservePublish increments the publish counter for a content kind
// (post, job, project).
func ObservePublish(kind string) {
	contentPublished.WithLabelValues(kind).Inc()
}

// ObserveMediaUpload increments the upload counter for a backend and result.
func ObserveMediaUpload(backend, result string) {
	mediaUploads.WithLabelValues(backend, result).Inc()
}

// ObserveLogin increments the login counter for a result
// (success, failure, rate_limited).
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// SessionOpened increments the active session gauge.
func SessionOpened() {
	activeSessions.Inc()
}

// SessionClosed decrements the active session gauge.
func SessionClosed() {
	activeSessions.Dec()
}

// statusRecorder captures the response status for the middleware.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.status = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.status = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// Middleware instruments every request. The path label uses the chi route
// pattern rather than the raw URL so UUIDs don't explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}
		ObserveHTTPRequest(r.Method, path, strconv.Itoa(rec.status), time.Since(start))
	})
}
