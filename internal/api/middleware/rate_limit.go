package middleware

import (
	"fmt"
	"math"
	"sync"
	"time"

	"menu-scorer/internal/infrastructure/metrics"
	"menu-scorer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter 依用戶端 IP 的令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	limiters *gocache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter 每個 IP 在 window 內最多 requests 次
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limiters: gocache.New(2*window, 4*window),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
	}
}

// Allow 檢查 key 是否還有令牌
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := rl.limiters.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
	}
	// 每次使用都延長存活時間，閒置的限流器會被清掉
	rl.limiters.Set(key, limiter, gocache.DefaultExpiration)
	return limiter.Allow()
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration, m *metrics.HTTPMetrics) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)
	retryAfter := int(math.Ceil(window.Seconds() / float64(max(requests, 1))))

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			m.RecordRejected("rate_limit")
			c.Header("Retry-After", fmt.Sprintf("%d", max(retryAfter, 1)))
			common.WriteError(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
