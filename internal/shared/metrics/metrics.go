package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	SharingMessagesTotal  *prometheus.CounterVec
	SharingMailSentTotal  prometheus.Counter
	RealtimeClientsActive prometheus.Gauge
}

// New creates and registers the application metrics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served.",
			},
		),
		SharingMessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharing_messages_total",
				Help: "Todo-sharing queue messages by outcome.",
			},
			[]string{"outcome"},
		),
		SharingMailSentTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sharing_mail_sent_total",
				Help: "Collaboration emails sent.",
			},
		),
		RealtimeClientsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "realtime_clients_active",
				Help: "Connected realtime WebSocket clients.",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SharingMessagesTotal,
		m.SharingMailSentTotal,
		m.RealtimeClientsActive,
	)

	return m
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
