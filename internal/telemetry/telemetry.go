// Package telemetry exposes Prometheus metrics for the monitor pipeline and
// the HTTP boundary.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all service Prometheus metrics.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	MonitorRuns      *prometheus.CounterVec
	BatchProspects   *prometheus.CounterVec
	FallbackVerdicts prometheus.Counter
}

// NewMetrics registers all metrics on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prospectpulse_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prospectpulse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		MonitorRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prospectpulse_monitor_runs_total",
			Help: "Single-prospect monitor runs by outcome",
		}, []string{"outcome"}),
		BatchProspects: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prospectpulse_batch_prospects_total",
			Help: "Prospects processed in batch runs by outcome",
		}, []string{"outcome"}),
		FallbackVerdicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prospectpulse_fallback_verdicts_total",
			Help: "Verdicts synthesized because model output failed to decode",
		}),
	}
}

// Handler returns the Prometheus exposition handler for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and durations per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
