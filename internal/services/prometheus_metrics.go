package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records domain metrics into the default registry.
// Construct once at startup; promauto panics on duplicate registration.
type PrometheusMetrics struct {
	authEventsTotal     *prometheus.CounterVec
	leadOperationsTotal *prometheus.CounterVec
	chartQueriesTotal   *prometheus.CounterVec
	queryDuration       *prometheus.HistogramVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events by outcome",
			},
			[]string{"outcome"},
		),
		leadOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_operations_total",
				Help: "Total number of lead store operations by operation and status",
			},
			[]string{"operation", "status"},
		),
		chartQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chart_queries_total",
				Help: "Total number of chart-data queries by aggregation kind",
			},
			[]string{"aggregation"},
		),
		queryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lead_query_duration_milliseconds",
				Help:    "Lead query duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
	}
}

func (m *PrometheusMetrics) RecordAuthEvent(outcome string) {
	m.authEventsTotal.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) RecordLeadOperation(operation, status string) {
	m.leadOperationsTotal.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) RecordChartQuery(aggregation string) {
	m.chartQueriesTotal.WithLabelValues(aggregation).Inc()
}

func (m *PrometheusMetrics) ObserveQueryDuration(operation string, duration time.Duration) {
	m.queryDuration.WithLabelValues(operation).Observe(float64(duration.Milliseconds()))
}

// NoopMetrics discards every recording. Used by tests, which may construct
// services many times within one process.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface {
	return NoopMetrics{}
}

func (NoopMetrics) RecordAuthEvent(string)                        {}
func (NoopMetrics) RecordLeadOperation(string, string)            {}
func (NoopMetrics) RecordChartQuery(string)                       {}
func (NoopMetrics) ObserveQueryDuration(string, time.Duration)    {}
