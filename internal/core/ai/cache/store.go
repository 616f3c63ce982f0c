// Package cache 食材抽取結果快取
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"menu-scorer/internal/core/ai/provider"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/pkg/common"
)

// 後端名稱
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

const keyPrefix = "menu-scorer:extract:"

// Store 快取後端
//
// Get 查無資料時回傳 common.ErrCacheMiss。
type Store interface {
	Get(ctx context.Context, key string) (provider.Extraction, error)
	Set(ctx context.Context, key string, value provider.Extraction) error
	Backend() string
	Close() error
}

// Key 由菜名與描述產生快取鍵
func Key(name, description string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	description = strings.ToLower(strings.TrimSpace(description))
	hash := sha256.Sum256([]byte(name + "\x00" + description))
	return keyPrefix + hex.EncodeToString(hash[:])
}

// New 依設定建立快取，停用時回傳 common.ErrCacheDisabled
func New(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		return nil, common.ErrCacheDisabled
	}
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(cfg), nil
	case BackendRedis:
		s, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
