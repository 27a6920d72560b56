package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa os contadores Prometheus expostos em /internal/metrics
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UmamiAPICalls    *prometheus.CounterVec
	UmamiAPIDuration *prometheus.HistogramVec
	UmamiAPIFailures *prometheus.CounterVec

	DashboardBuildsTotal    *prometheus.CounterVec
	DashboardBuildDuration  prometheus.Histogram
	DailyReportArchiveTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		UmamiAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "umami_api_calls_total",
				Help: "Total number of Umami API calls",
			},
			[]string{"operation", "status"},
		),

		UmamiAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "umami_api_duration_seconds",
				Help:    "Umami API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		UmamiAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "umami_api_failures_total",
				Help: "Total number of Umami API failures",
			},
			[]string{"operation", "error_kind"},
		),

		DashboardBuildsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_builds_total",
				Help: "Total number of dashboard aggregations",
			},
			[]string{"status"},
		),

		DashboardBuildDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_build_duration_seconds",
				Help:    "Dashboard aggregation duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),

		DailyReportArchiveTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daily_report_archive_total",
				Help: "Total number of daily report archive runs",
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest registra uma requisição HTTP atendida
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordUmamiCall registra uma chamada à API do Umami
func (m *Metrics) RecordUmamiCall(operation, status string, duration time.Duration) {
	m.UmamiAPICalls.WithLabelValues(operation, status).Inc()
	m.UmamiAPIDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordUmamiFailure registra uma falha em chamada à API do Umami
func (m *Metrics) RecordUmamiFailure(operation, errorKind string) {
	m.UmamiAPIFailures.WithLabelValues(operation, errorKind).Inc()
}
