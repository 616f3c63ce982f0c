package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 抽取結果標籤
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeTimeout  = "timeout"
	OutcomeCached   = "cached"
)

// ExtractorMetrics 外部食材抽取與快取指標
type ExtractorMetrics struct {
	extractionsTotal   *prometheus.CounterVec
	extractionDuration prometheus.Histogram
	cacheOpsTotal      *prometheus.CounterVec
	inFlight           prometheus.Gauge
}

// NewExtractorMetrics 建立並註冊抽取指標
func NewExtractorMetrics(registry *prometheus.Registry) (*ExtractorMetrics, error) {
	m := &ExtractorMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ExtractorMetrics) initMetrics() {
	m.extractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_scorer_extractions_total",
			Help: "Total number of ingredient extraction attempts",
		},
		[]string{"outcome"}, // accepted, rejected, failed, timeout, cached
	)

	m.extractionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "menu_scorer_extraction_duration_seconds",
			Help:    "Time taken by the external extractor",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount15),
		},
	)

	m.cacheOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_scorer_extraction_cache_operations_total",
			Help: "Extraction cache lookups by result",
		},
		[]string{"backend", "result"}, // result: hit, miss
	)

	m.inFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "menu_scorer_extractions_in_flight",
			Help: "Extractor calls currently running",
		},
	)
}

func (m *ExtractorMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.extractionsTotal,
		m.extractionDuration,
		m.cacheOpsTotal,
		m.inFlight,
	}
}

// Describe implements prometheus.Collector
func (m *ExtractorMetrics) Describe(ch chan<- *prometheus.Desc) {
	describeAll(ch, m.collectors())
}

// Collect implements prometheus.Collector
func (m *ExtractorMetrics) Collect(ch chan<- prometheus.Metric) {
	collectAll(ch, m.collectors())
}

// RecordExtraction 記錄一次抽取結果與耗時
func (m *ExtractorMetrics) RecordExtraction(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.extractionsTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeCached {
		m.extractionDuration.Observe(seconds)
	}
}

// RecordCacheLookup 記錄快取查詢
func (m *ExtractorMetrics) RecordCacheLookup(backend string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOpsTotal.WithLabelValues(backend, result).Inc()
}

// InFlight 調整進行中的呼叫數
func (m *ExtractorMetrics) InFlight(delta float64) {
	if m == nil {
		return
	}
	m.inFlight.Add(delta)
}
