package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ScoringMetrics 菜單評分相關指標，nil 接收者的方法皆為 no-op
type ScoringMetrics struct {
	menusScoredTotal    *prometheus.CounterVec
	dishesScoredTotal   *prometheus.CounterVec
	dishesFilteredTotal prometheus.Counter
	scoringDuration     *prometheus.HistogramVec
}

// NewScoringMetrics 建立並註冊評分指標
func NewScoringMetrics(registry *prometheus.Registry) (*ScoringMetrics, error) {
	m := &ScoringMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ScoringMetrics) initMetrics() {
	m.menusScoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_scorer_menus_scored_total",
			Help: "Total number of menus scored",
		},
		[]string{"mode"}, // consumer, restaurant
	)

	m.dishesScoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_scorer_dishes_scored_total",
			Help: "Total number of dishes that received a score",
		},
		[]string{"mode"},
	)

	m.dishesFilteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "menu_scorer_dishes_filtered_total",
			Help: "Total number of dishes excluded by consumer preferences",
		},
	)

	m.scoringDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menu_scorer_scoring_duration_seconds",
			Help:    "Time taken to score a whole menu",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount15),
		},
		[]string{"mode"},
	)
}

func (m *ScoringMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.menusScoredTotal,
		m.dishesScoredTotal,
		m.dishesFilteredTotal,
		m.scoringDuration,
	}
}

// Describe implements prometheus.Collector
func (m *ScoringMetrics) Describe(ch chan<- *prometheus.Desc) {
	describeAll(ch, m.collectors())
}

// Collect implements prometheus.Collector
func (m *ScoringMetrics) Collect(ch chan<- prometheus.Metric) {
	collectAll(ch, m.collectors())
}

// RecordMenuScored 記錄一次菜單評分
func (m *ScoringMetrics) RecordMenuScored(mode string, scored, filtered int, seconds float64) {
	if m == nil {
		return
	}
	m.menusScoredTotal.WithLabelValues(mode).Inc()
	m.dishesScoredTotal.WithLabelValues(mode).Add(float64(scored))
	m.dishesFilteredTotal.Add(float64(filtered))
	m.scoringDuration.WithLabelValues(mode).Observe(seconds)
}
