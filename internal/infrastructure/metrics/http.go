package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics HTTP 請求指標
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rejectedTotal   *prometheus.CounterVec
}

// NewHTTPMetrics 建立並註冊 HTTP 指標
func NewHTTPMetrics(registry *prometheus.Registry) (*HTTPMetrics, error) {
	m := &HTTPMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *HTTPMetrics) initMetrics() {
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount12),
		},
		[]string{"method", "path"},
	)

	m.rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_rejected_total",
			Help: "Requests rejected before reaching a handler",
		},
		[]string{"reason"}, // rate_limit, duplicate, body_too_large
	)
}

func (m *HTTPMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requestsTotal, m.requestDuration, m.rejectedTotal}
}

// Describe implements prometheus.Collector
func (m *HTTPMetrics) Describe(ch chan<- *prometheus.Desc) {
	describeAll(ch, m.collectors())
}

// Collect implements prometheus.Collector
func (m *HTTPMetrics) Collect(ch chan<- prometheus.Metric) {
	collectAll(ch, m.collectors())
}

// RecordHTTPRequest 記錄請求
func (m *HTTPMetrics) RecordHTTPRequest(method, path string, statusCode int, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordRejected 記錄被中介層拒絕的請求
func (m *HTTPMetrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(reason).Inc()
}
