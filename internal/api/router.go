// Package api HTTP 路由與中間件組裝
package api

import (
	"time"

	"menu-scorer/internal/api/handlers/health"
	menuHandler "menu-scorer/internal/api/handlers/menu"
	"menu-scorer/internal/api/middleware"
	"menu-scorer/internal/core/ai/cache"
	"menu-scorer/internal/core/ai/queue"
	"menu-scorer/internal/core/scoring"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/infrastructure/metrics"
	"menu-scorer/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務，Metrics、Queue、Cache 可為 nil
type Dependencies struct {
	Scorer  *scoring.Scorer
	Metrics *metrics.Metrics
	Queue   *queue.Manager
	Cache   cache.Store
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	var httpMetrics *metrics.HTTPMetrics
	if deps.Metrics != nil {
		httpMetrics = deps.Metrics.HTTP
	}
	if deps.Scorer == nil {
		deps.Scorer = scoring.NewScorer(nil)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger(httpMetrics))

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes, httpMetrics))

	// 超時並注入共用服務
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	injected := map[string]interface{}{health.KeyConfig: cfg}
	if deps.Queue != nil {
		injected[health.KeyQueue] = deps.Queue
	}
	if deps.Cache != nil {
		injected[health.KeyCache] = deps.Cache
	}
	router.Use(middleware.Inject(injected))

	// 健康檢查路由
	router.GET("/", health.Root)
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	if cfg.Metrics.Enabled && deps.Metrics != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window, httpMetrics))
	}
	api.Use(middleware.Deduplication(cfg.DedupWindow, httpMetrics))
	{
		h := menuHandler.NewHandler(deps.Scorer, cfg)

		menuGroup := api.Group("/menu")
		{
			menuGroup.POST("/score", h.Score)
			menuGroup.POST("/consumer", h.ScoreConsumer)
			menuGroup.POST("/restaurant", h.ScoreRestaurant)
		}

		dishGroup := api.Group("/dish")
		{
			dishGroup.POST("/analyze", h.AnalyzeDish)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled && deps.Metrics != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
