package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"menu-scorer/internal/core/ai/queue"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 注入 gin.Context 的鍵
const (
	KeyConfig = "config"
	KeyQueue  = "queue"
	KeyCache  = "cache"
)

// readinessTimeout 依賴檢查的逾時
const readinessTimeout = 2 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Extractor bool                   `json:"extractor_enabled"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
}

// Pinger 可檢查連線的依賴，例如 Redis 快取
type Pinger interface {
	Ping(ctx context.Context) error
}

// Root 服務狀態
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Menu Scoring API is running",
	})
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	v, exists := c.Get(KeyConfig)
	if !exists {
		common.LogError("Configuration not found in context")
		common.WriteError(c, common.ErrInternalError, false)
		return
	}
	cfg, ok := v.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		common.WriteError(c, common.ErrInternalError, false)
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Extractor: cfg.Extractor.Enabled,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if q, ok := c.Get(KeyQueue); ok {
		if mgr, ok := q.(*queue.Manager); ok && mgr != nil {
			status := mgr.GetQueueStatus()
			response.Queue = &status
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，快取支援 Ping 時一併檢查
func ReadinessCheck(c *gin.Context) {
	checks := gin.H{}

	if v, ok := c.Get(KeyCache); ok {
		if p, ok := v.(Pinger); ok && p != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				common.LogWarn("Cache not ready", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not_ready",
					"checks": gin.H{"cache": err.Error()},
				})
				return
			}
			checks["cache"] = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": checks,
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
