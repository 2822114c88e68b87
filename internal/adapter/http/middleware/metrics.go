package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics middleware records HTTP metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath replaces account IDs and aliases in URL paths with
// placeholders so the path label stays low-cardinality.
func normalizePath(path string) string {
	const (
		accountsPrefix  = "/api/v1/accounts/"
		transfersPrefix = "/api/v1/transfers/"
	)

	switch {
	case strings.HasPrefix(path, accountsPrefix):
		rest := strings.TrimPrefix(path, accountsPrefix)
		id, suffix, _ := strings.Cut(rest, "/")
		if id == "" {
			return path
		}
		normalized := accountsPrefix + ":id"
		if suffix != "" {
			normalized += "/" + normalizeAccountSuffix(suffix)
		}
		return normalized

	case strings.HasPrefix(path, transfersPrefix):
		rest := strings.TrimPrefix(path, transfersPrefix)
		// /transfers/pix is a fixed route, not a transfer ID.
		if rest != "" && rest != "pix" && !strings.Contains(rest, "/") {
			return transfersPrefix + ":id"
		}
	}

	return path
}

func normalizeAccountSuffix(suffix string) string {
	head, alias, found := strings.Cut(suffix, "/")
	if head == "pix-keys" && found && alias != "" {
		return "pix-keys/:alias"
	}
	return suffix
}
