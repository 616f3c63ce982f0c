package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLACKBOX_API_KEY", "")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Extractor.Enabled, "extractor stays off without an API key")
	assert.Equal(t, 20*time.Second, cfg.Extractor.Timeout)
	assert.InDelta(t, 0.2, cfg.Extractor.Temperature, 1e-9)
	assert.Equal(t, 500, cfg.Extractor.MaxTokens)
	assert.InDelta(t, 0.5, cfg.Extractor.MinConfidence, 1e-9)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 10, cfg.Scoring.DefaultTopN)
	assert.Equal(t, time.Second, cfg.DedupWindow)
}

func TestLoadEnablesExtractorWithAPIKey(t *testing.T) {
	t.Setenv("BLACKBOX_API_KEY", "sk-test-1234567890")
	t.Setenv("APP_EXTRACTOR_TIMEOUT", "5s")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.Extractor.Enabled)
	assert.Equal(t, "sk-test-1234567890", cfg.Extractor.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Extractor.Timeout)
}

func TestLoadExplicitlyDisabledExtractor(t *testing.T) {
	t.Setenv("BLACKBOX_API_KEY", "sk-test-1234567890")
	t.Setenv("APP_EXTRACTOR_ENABLED", "false")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.False(t, cfg.Extractor.Enabled)
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memcached")
}

func TestValidateConfig(t *testing.T) {
	base := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8080},
			Cache:     CacheConfig{Enabled: true, Backend: "redis", TTL: time.Hour},
			Queue:     QueueConfig{MaxInFlight: 1},
			Scoring:   ScoringConfig{Workers: 1},
			RateLimit: RateLimitConfig{Enabled: false},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }, wantErr: true},
		{name: "zero in flight", mutate: func(c *Config) { c.Queue.MaxInFlight = 0 }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Scoring.Workers = 0 }, wantErr: true},
		{name: "bad rate limit", mutate: func(c *Config) {
			c.RateLimit = RateLimitConfig{Enabled: true, Requests: 0, Window: time.Minute}
		}, wantErr: true},
		{name: "confidence out of range", mutate: func(c *Config) {
			c.Extractor = ExtractorConfig{Enabled: true, Timeout: time.Second, MinConfidence: 1.5}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadRejectsExtractorTimeoutAboveRequestTimeout(t *testing.T) {
	t.Setenv("BLACKBOX_API_KEY", "sk-test-1234567890")
	t.Setenv("APP_EXTRACTOR_TIMEOUT", "60s")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_timeout")
}
