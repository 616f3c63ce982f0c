package common

import (
	"math"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// RequestID 取得請求 ID，沒有時產生新的
func RequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	if id := c.Writer.Header().Get("X-Request-ID"); id != "" {
		return id
	}
	return GenerateUUID()
}

// WriteError 寫入錯誤響應
func WriteError(c *gin.Context, err error, debug bool) {
	ce := AsCustomError(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(debug))
}

// Round 四捨五入到指定小數位
func Round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

// SplitCSV 拆分逗號分隔字串並去除空白
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
