package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
	Extractor   ExtractorConfig `mapstructure:"extractor"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Queue       QueueConfig     `mapstructure:"queue"`
	Scoring     ScoringConfig   `mapstructure:"scoring"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ExtractorConfig 外部食材抽取服務設定
type ExtractorConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Model         string        `mapstructure:"model"`
	Temperature   float64       `mapstructure:"temperature"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MinConfidence float64       `mapstructure:"min_confidence"`
}

// CacheConfig 抽取結果快取設定
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // memory 或 redis
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

// QueueConfig 外部呼叫併發上限
type QueueConfig struct {
	MaxInFlight int `mapstructure:"max_in_flight"`
}

// ScoringConfig 評分設定
type ScoringConfig struct {
	Workers     int    `mapstructure:"workers"`
	DefaultTopN int    `mapstructure:"default_top_n"`
	TablesPath  string `mapstructure:"tables_path"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// MetricsConfig Prometheus 設定
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時直接使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("extractor.api_key", "APP_EXTRACTOR_API_KEY", "BLACKBOX_API_KEY")
	_ = v.BindEnv("extractor.model", "APP_EXTRACTOR_MODEL", "EXTRACTOR_MODEL")
	_ = v.BindEnv("cache.enabled", "APP_CACHE_ENABLED", "CACHE_ENABLED")
	_ = v.BindEnv("cache.backend", "APP_CACHE_BACKEND", "CACHE_BACKEND")
	_ = v.BindEnv("cache.redis_addr", "APP_CACHE_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("rate_limit.enabled", "APP_RATE_LIMIT_ENABLED", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "APP_RATE_LIMIT_REQUESTS", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "APP_RATE_LIMIT_WINDOW", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("dedup_window", "APP_DEDUP_WINDOW", "DEDUP_WINDOW")
	_ = v.BindEnv("log.level", "APP_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("scoring.tables_path", "APP_SCORING_TABLES_PATH", "TABLES_PATH")
	_ = v.BindEnv("server.port", "APP_SERVER_PORT", "PORT")

	// 設定設定檔名稱和路徑
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 沒有 API key 就不啟用外部抽取
	config.Extractor.Enabled = config.Extractor.APIKey != "" &&
		(!v.IsSet("extractor.enabled") || v.GetBool("extractor.enabled"))

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "menu-scorer")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "55s")
	v.SetDefault("server.max_body_bytes", 2<<20)

	// 日誌設定
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")

	// 外部抽取設定
	v.SetDefault("extractor.base_url", "https://api.blackbox.ai/v1")
	v.SetDefault("extractor.model", "blackboxai/openai/gpt-4o-mini")
	v.SetDefault("extractor.temperature", 0.2)
	v.SetDefault("extractor.max_tokens", 500)
	v.SetDefault("extractor.timeout", "20s")
	v.SetDefault("extractor.min_confidence", 0.5)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.max_size", 5000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)

	// 併發設定
	v.SetDefault("queue.max_in_flight", 4)

	// 評分設定
	v.SetDefault("scoring.workers", 8)
	v.SetDefault("scoring.default_top_n", 10)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 指標設定
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Extractor.Enabled {
		if config.Extractor.Timeout <= 0 {
			return fmt.Errorf("invalid extractor timeout")
		}
		// 單次抽取必須能在請求逾時內完成，否則所有菜品都只會用到關鍵字分析
		if config.Server.RequestTimeout > 0 && config.Server.RequestTimeout <= config.Extractor.Timeout {
			return fmt.Errorf("server request_timeout (%s) must exceed extractor timeout (%s)",
				config.Server.RequestTimeout, config.Extractor.Timeout)
		}
		if config.Extractor.MinConfidence < 0 || config.Extractor.MinConfidence > 1 {
			return fmt.Errorf("extractor min_confidence must be within [0,1]")
		}
	}

	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case "memory", "redis":
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.Backend == "memory" && config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.Queue.MaxInFlight <= 0 {
		return fmt.Errorf("invalid queue max_in_flight")
	}
	if config.Scoring.Workers <= 0 {
		return fmt.Errorf("invalid scoring workers")
	}
	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}
