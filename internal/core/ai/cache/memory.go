package cache

import (
	"context"
	"sync/atomic"

	"menu-scorer/internal/core/ai/provider"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/pkg/common"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryStore 以 go-cache 實作的程序內快取
type MemoryStore struct {
	cache   *gocache.Cache
	maxSize int
	hits    atomic.Int64
	misses  atomic.Int64
	skipped atomic.Int64
}

// NewMemoryStore 建立記憶體快取
func NewMemoryStore(cfg config.CacheConfig) *MemoryStore {
	m := &MemoryStore{
		cache:   gocache.New(cfg.TTL, cfg.CleanupInterval),
		maxSize: cfg.MaxSize,
	}
	common.LogInfo("快取管理員已初始化",
		zap.String("backend", BackendMemory),
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)
	return m
}

// Get 取得快取值
func (m *MemoryStore) Get(_ context.Context, key string) (provider.Extraction, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		m.misses.Add(1)
		return provider.Extraction{}, common.ErrCacheMiss
	}
	ex, ok := v.(provider.Extraction)
	if !ok {
		m.cache.Delete(key)
		m.misses.Add(1)
		return provider.Extraction{}, common.ErrCacheMiss
	}
	m.hits.Add(1)
	return ex, nil
}

// Set 寫入快取；容量已滿且無過期項目可清時略過
func (m *MemoryStore) Set(_ context.Context, key string, value provider.Extraction) error {
	if m.maxSize > 0 && m.cache.ItemCount() >= m.maxSize {
		m.cache.DeleteExpired()
		if m.cache.ItemCount() >= m.maxSize {
			m.skipped.Add(1)
			common.LogDebug("快取已滿，略過寫入", zap.Int("目前容量", m.cache.ItemCount()))
			return nil
		}
	}
	m.cache.Set(key, value, gocache.DefaultExpiration)
	return nil
}

// Backend 後端名稱
func (m *MemoryStore) Backend() string {
	return BackendMemory
}

// Stats 快取統計
func (m *MemoryStore) Stats() map[string]interface{} {
	hits, misses := m.hits.Load(), m.misses.Load()
	ratio := 0.0
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	return map[string]interface{}{
		"size":      m.cache.ItemCount(),
		"max_size":  m.maxSize,
		"hits":      hits,
		"misses":    misses,
		"skipped":   m.skipped.Load(),
		"hit_ratio": ratio,
	}
}

// Close 清空快取
func (m *MemoryStore) Close() error {
	m.cache.Flush()
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.hits.Load()),
		zap.Int64("未命中次數", m.misses.Load()),
	)
	return nil
}
