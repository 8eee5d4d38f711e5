package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var latencyBuckets = []float64{50, 100, 300, 500, 1000, 5000}

const (
	RequestsCollectorName = "chi_requests_total"
	LatencyCollectorName  = "chi_request_duration_milliseconds"
)

// Middleware is a handler that exposes prometheus metrics for the number of
// requests and the latency, partitioned by status code, method and HTTP path.
type Middleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMiddleware returns a new prometheus middleware for the provided service name.
func NewMiddleware(name string) *Middleware {
	var m Middleware
	m.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        RequestsCollectorName,
			Help:        "Number of HTTP requests partitioned by status code, method and HTTP path.",
			ConstLabels: prometheus.Labels{"service": name},
		}, []string{"code", "method", "path"})

	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        LatencyCollectorName,
		Help:        "Time spent on the request partitioned by status code, method and HTTP path.",
		ConstLabels: prometheus.Labels{"service": name},
		Buckets:     latencyBuckets,
	}, []string{"code", "method", "path"})

	return &m
}

// MustRegisterDefault registers the middleware collectors on the default
// prometheus registerer, panicking on duplicate registration.
func (m *Middleware) MustRegisterDefault() {
	prometheus.MustRegister(m.requests, m.latency)
}

// Handler returns a handler for the middleware pattern.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// use the chi route pattern so path cardinality stays bounded
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		code := strconv.Itoa(ww.Status())
		m.requests.WithLabelValues(code, r.Method, path).Inc()
		m.latency.WithLabelValues(code, r.Method, path).Observe(float64(time.Since(start).Milliseconds()))
	})
}
