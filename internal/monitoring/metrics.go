package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the execution service.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Execution metrics
	ExecutionsTotal   *prometheus.CounterVec
	ExecutionDuration *prometheus.HistogramVec
	ExecutionsActive  prometheus.Gauge
	RequestsRejected  prometheus.Counter

	startTime time.Time
	Uptime    prometheus.Gauge
}

// NewMetrics registers and returns the metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runbox_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "runbox_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ExecutionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runbox_executions_total",
				Help: "Completed executions by mode and terminal status",
			},
			[]string{"mode", "status"},
		),
		ExecutionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "runbox_execution_duration_seconds",
				Help:    "Sandbox execution duration in seconds",
				Buckets: []float64{.001, .01, .05, .1, .25, .5, 1, 2, 5, 10},
			},
			[]string{"mode"},
		),
		ExecutionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "runbox_executions_active",
				Help: "Executions currently holding a sandbox slot",
			},
		),
		RequestsRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "runbox_requests_rejected_total",
				Help: "Requests rejected before any sandbox work began",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "runbox_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordExecution records one finished execution.
func (m *Metrics) RecordExecution(mode, status string, duration time.Duration) {
	m.ExecutionsTotal.WithLabelValues(mode, status).Inc()
	m.ExecutionDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordRejection counts a request-level validation rejection.
func (m *Metrics) RecordRejection() {
	m.RequestsRejected.Inc()
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
