package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"menu-scorer/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	m, err := metrics.New()
	require.NoError(t, err)
	return m
}

// scrape 讀取 Prometheus 文字格式輸出
func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func echo(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, body)
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBodySizeLimitByContentLength(t *testing.T) {
	m := newMetrics(t)
	r := gin.New()
	r.Use(BodySizeLimit(16, m.HTTP))
	r.POST("/x", echo)

	w := post(r, "/x", `{"name":"a very long value here"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "BODY_TOO_LARGE")
	assert.Contains(t, scrape(t, m), `http_requests_rejected_total{reason="body_too_large"} 1`)

	w = post(r, "/x", `{"a":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodySizeLimitWithoutContentLength(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(16, nil))
	r.Use(Deduplication(time.Second, nil))
	r.POST("/x", echo)

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"a very long value here"}`))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestDeduplicationRejectsRepeatedBody(t *testing.T) {
	r := gin.New()
	r.Use(Deduplication(time.Minute, nil))
	r.POST("/x", echo)

	require.Equal(t, http.StatusOK, post(r, "/x", `{"a":1}`).Code)

	w := post(r, "/x", `{"a":1}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 不同內容不受影響，且請求體仍可被讀取
	w = post(r, "/x", `{"a":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"a":2}`, w.Body.String())
}

func TestDeduplicationWindowExpires(t *testing.T) {
	r := gin.New()
	r.Use(Deduplication(20*time.Millisecond, nil))
	r.POST("/x", echo)

	require.Equal(t, http.StatusOK, post(r, "/x", `{"a":1}`).Code)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, http.StatusOK, post(r, "/x", `{"a":1}`).Code)
}

func TestDeduplicationIgnoresGet(t *testing.T) {
	r := gin.New()
	r.Use(Deduplication(time.Minute, nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	m := newMetrics(t)
	r := gin.New()
	r.Use(RateLimit(2, time.Minute, m.HTTP))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "30", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Contains(t, scrape(t, m), `http_requests_rejected_total{reason="rate_limit"} 1`)
}

func TestRateLimiterIsPerKey(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestLoggerRecordsRouteTemplate(t *testing.T) {
	m := newMetrics(t)
	r := gin.New()
	r.Use(Logger(m.HTTP))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	out := scrape(t, m)
	assert.Contains(t, out, `http_requests_total{method="GET",path="/items/:id",status_code="200"} 2`)
	assert.Contains(t, out, `http_requests_total{method="GET",path="unmatched",status_code="404"} 1`)
}

func TestTimeoutWritesGatewayTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestInject(t *testing.T) {
	r := gin.New()
	r.Use(Inject(map[string]interface{}{"answer": 42}))
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.MustGet("answer"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", bytes.NewReader(nil)))
	assert.Equal(t, "42", w.Body.String())
}
