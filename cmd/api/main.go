package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menu-scorer/internal/api"
	"menu-scorer/internal/core/ai/cache"
	"menu-scorer/internal/core/ai/client"
	"menu-scorer/internal/core/ai/queue"
	"menu-scorer/internal/core/ai/service"
	"menu-scorer/internal/core/enrich"
	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/core/scoring"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/infrastructure/metrics"
	"menu-scorer/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.Bool("extractor_enabled", cfg.Extractor.Enabled),
		zap.String("extractor_model", cfg.Extractor.Model),
		zap.String("api_key", cfg.Extractor.APIKey),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 參考資料表
	tables := reference.Default()
	if cfg.Scoring.TablesPath != "" {
		tables, err = reference.LoadFile(cfg.Scoring.TablesPath)
		if err != nil {
			common.LogFatal("Failed to load reference tables",
				zap.String("path", cfg.Scoring.TablesPath),
				zap.Error(common.ErrTablesLoad.Wrap(err)),
			)
		}
		common.LogInfo("Reference tables loaded", zap.String("path", cfg.Scoring.TablesPath))
	}

	m, err := metrics.New()
	if err != nil {
		common.LogFatal("Failed to initialize metrics", zap.Error(err))
	}

	// 初始化快取，只在快取開啟但初始化失敗時才 Fatal
	store, err := cache.New(cfg.Cache)
	switch {
	case errors.Is(err, common.ErrCacheDisabled):
		common.LogInfo("Extraction cache disabled")
		store = nil
	case err != nil:
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	default:
		defer store.Close()
	}

	q := queue.NewManager(cfg.Queue.MaxInFlight)

	enricherOpts := []enrich.Option{enrich.WithMinConfidence(cfg.Extractor.MinConfidence)}
	if cfg.Extractor.Enabled {
		chat := client.NewClient(cfg.Extractor)
		defer chat.Close()

		svcOpts := []service.Option{
			service.WithQueue(q),
			service.WithTimeout(cfg.Extractor.Timeout),
			service.WithMetrics(m.Extractor),
		}
		if store != nil {
			svcOpts = append(svcOpts, service.WithCache(store))
		}
		enricherOpts = append(enricherOpts, enrich.WithExtractor(service.NewService(chat, svcOpts...)))
	} else {
		common.LogWarn("Extractor disabled, using keyword analysis only")
	}

	scorer := scoring.NewScorer(
		enrich.New(tables, enricherOpts...),
		scoring.WithWorkers(cfg.Scoring.Workers),
		scoring.WithMetrics(m.Scoring),
	)

	router := api.SetupRouter(cfg, api.Dependencies{
		Scorer:  scorer,
		Metrics: m,
		Queue:   q,
		Cache:   store,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
