package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Processor metrics
	ProcessorRequestsTotal   *prometheus.CounterVec
	ProcessorRequestDuration *prometheus.HistogramVec

	// Webhook metrics
	WebhookEventsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
// on a dedicated registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "paypal_gateway"
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		// Processor metrics
		ProcessorRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "processor",
				Name:      "requests_total",
				Help:      "Total number of calls to the payment processor",
			},
			[]string{"operation", "outcome"}, // outcome: ok, api_error, transport_error
		),
		ProcessorRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "processor",
				Name:      "request_duration_seconds",
				Help:      "Payment processor call duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),

		// Webhook metrics
		WebhookEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "events_total",
				Help:      "Total number of processed webhook events",
			},
			[]string{"action"},
		),
	}
}

// Handler returns an HTTP handler serving this metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordProcessorCall records an outbound processor call.
func (m *Metrics) RecordProcessorCall(operation, outcome string, duration time.Duration) {
	m.ProcessorRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.ProcessorRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordWebhookEvent records a translated webhook event by action.
func (m *Metrics) RecordWebhookEvent(action string) {
	m.WebhookEventsTotal.WithLabelValues(action).Inc()
}
