package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"menu-scorer/internal/core/ai/provider"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisDialTimeout = 2 * time.Second

// RedisStore 以 Redis 實作的共享快取
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 建立 Redis 快取並測試連線
func NewRedisStore(cfg config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: redisDialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("backend", BackendRedis),
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("存活時間", cfg.TTL),
	)
	return NewRedisStoreWithClient(client, cfg.TTL), nil
}

// NewRedisStoreWithClient 使用既有的 Redis 客戶端
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get 取得快取值
func (s *RedisStore) Get(ctx context.Context, key string) (provider.Extraction, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return provider.Extraction{}, common.ErrCacheMiss
		}
		return provider.Extraction{}, fmt.Errorf("failed to get cache: %w", err)
	}

	var ex provider.Extraction
	if err := json.Unmarshal(data, &ex); err != nil {
		return provider.Extraction{}, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return ex, nil
}

// Set 寫入快取
func (s *RedisStore) Set(ctx context.Context, key string, value provider.Extraction) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Backend 後端名稱
func (s *RedisStore) Backend() string {
	return BackendRedis
}

// Ping 檢查連線，供就緒檢查使用
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
