package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"menu-scorer/internal/core/ai/queue"
	"menu-scorer/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func init() {
	gin.SetMode(gin.TestMode)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func withValues(values map[string]interface{}) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		for k, v := range values {
			c.Set(k, v)
		}
	})
	r.GET("/", Root)
	r.GET("/health", HealthCheck)
	r.GET("/ready", ReadinessCheck)
	r.GET("/live", LivenessCheck)
	return r
}

func TestRoot(t *testing.T) {
	w := get(withValues(nil), "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"Menu Scoring API is running"}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Version = "1.2.3"
	r := withValues(map[string]interface{}{
		KeyConfig: cfg,
		KeyQueue:  queue.NewManager(3),
	})

	w := get(r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	require.NotNil(t, resp.Queue)
	assert.Equal(t, int64(3), resp.Queue.MaxInFlight)
}

func TestHealthCheckWithoutConfig(t *testing.T) {
	w := get(withValues(nil), "/health")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReadinessCheck(t *testing.T) {
	w := get(withValues(nil), "/ready")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(withValues(map[string]interface{}{KeyCache: fakePinger{}}), "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cache":"ok"`)

	w = get(withValues(map[string]interface{}{KeyCache: fakePinger{err: errors.New("connection refused")}}), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestLivenessCheck(t *testing.T) {
	w := get(withValues(nil), "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}
