// Package metrics 提供 Prometheus 指標
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 直方圖桶設定
const (
	BucketStart1ms = 0.001
	BucketFactor2  = 2
	BucketCount12  = 12 // 1ms 到約 2s
	BucketCount15  = 15 // 1ms 到約 16s
)

// Metrics 應用程式所有指標
type Metrics struct {
	registry  *prometheus.Registry
	Scoring   *ScoringMetrics
	Extractor *ExtractorMetrics
	HTTP      *HTTPMetrics
}

// New 建立獨立 registry 並註冊所有指標
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	scoring, err := NewScoringMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring metrics: %w", err)
	}
	extractor, err := NewExtractorMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor metrics: %w", err)
	}
	httpMetrics, err := NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	return &Metrics{
		registry:  registry,
		Scoring:   scoring,
		Extractor: extractor,
		HTTP:      httpMetrics,
	}, nil
}

// Registry 底層 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 端點
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// describeAll 依序呼叫每個 collector 的 Describe
func describeAll(ch chan<- *prometheus.Desc, cs []prometheus.Collector) {
	for _, c := range cs {
		c.Describe(ch)
	}
}

func collectAll(ch chan<- prometheus.Metric, cs []prometheus.Collector) {
	for _, c := range cs {
		c.Collect(ch)
	}
}
