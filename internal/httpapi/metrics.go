package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the API.
type Metrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	reports          prometheus.Counter
	feedbackFailures *prometheus.CounterVec
}

// NewMetrics registers the API collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drillreport",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "drillreport",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route"}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drillreport",
			Name:      "reports_generated_total",
			Help:      "Student reports generated.",
		}),
		feedbackFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drillreport",
			Name:      "feedback_failures_total",
			Help:      "Mode reports served with placeholder feedback.",
		}, []string{"mode"}),
	}
	registry.MustRegister(
		m.requests,
		m.duration,
		m.reports,
		m.feedbackFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records request counts and latency.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(startedAt).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeReport(exerciseFeedback, poolFeedback bool) {
	m.reports.Inc()
	if !exerciseFeedback {
		m.feedbackFailures.WithLabelValues("exercise").Inc()
	}
	if !poolFeedback {
		m.feedbackFailures.WithLabelValues("pool").Inc()
	}
}
