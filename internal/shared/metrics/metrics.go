package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_roaster"

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	aiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "calls_total",
			Help:      "AI transform calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	aiCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "call_duration_seconds",
			Help:      "AI transform call duration in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"operation"},
	)

	extractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "documents_total",
			Help:      "Text extractions by document format and outcome.",
		},
		[]string{"format", "outcome"},
	)

	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "uploads",
			Name:      "total",
			Help:      "Upload attempts by outcome.",
		},
		[]string{"outcome"},
	)
	uploadsPurgedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "uploads",
			Name:      "purged_total",
			Help:      "Uploaded resumes removed by the retention sweep.",
		},
	)

	contactMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "messages_total",
			Help:      "Contact form submissions by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		aiCallsTotal,
		aiCallDuration,
		extractionsTotal,
		uploadsTotal,
		uploadsPurgedTotal,
		contactMessagesTotal,
	)
}

// Registry exposes the collector registry, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

func ObserveHTTPRequest(method, route, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveAICall records one transform call. outcome is "ok" or an error kind.
func ObserveAICall(operation, outcome string, d time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	aiCallsTotal.WithLabelValues(operation, outcome).Inc()
	aiCallDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func IncExtraction(format, outcome string) {
	extractionsTotal.WithLabelValues(format, outcome).Inc()
}

func IncUpload(outcome string) {
	uploadsTotal.WithLabelValues(outcome).Inc()
}

func AddPurged(n int) {
	if n <= 0 {
		return
	}
	uploadsPurgedTotal.Add(float64(n))
}

func IncContact(outcome string) {
	contactMessagesTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
