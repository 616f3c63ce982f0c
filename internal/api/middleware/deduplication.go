package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"menu-scorer/internal/infrastructure/metrics"
	"menu-scorer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultDedupWindow 相同請求的最短間隔
const DefaultDedupWindow = time.Second

// Deduplication 請求去重中間件，window 內相同的 POST 請求回傳 429
func Deduplication(window time.Duration, m *metrics.HTTPMetrics) gin.HandlerFunc {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	seen := gocache.New(window, 10*window)

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				m.RecordRejected("body_too_large")
				common.WriteError(c, common.ErrBodyTooLarge.Wrap(err), false)
				return
			}
			common.WriteError(c, common.ErrInvalidRequest.Wrap(err), false)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(body)
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path + ":" + hex.EncodeToString(hash[:])

		// Add 在鍵已存在時失敗
		if err := seen.Add(fingerprint, struct{}{}, gocache.DefaultExpiration); err != nil {
			common.LogInfo("Duplicate request rejected",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			m.RecordRejected("duplicate")
			common.WriteError(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
