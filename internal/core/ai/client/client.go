// Package client chat completions HTTP 客戶端
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"menu-scorer/internal/core/ai"
	"menu-scorer/internal/infrastructure/config"
	"menu-scorer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// maxErrorBody 錯誤訊息中保留的響應長度
const maxErrorBody = 300

// Client OpenAI 相容 API 客戶端
type Client struct {
	http        *resty.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewClient 建立客戶端
func NewClient(cfg config.ExtractorConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		http:        httpClient,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// HTTPClient 底層 resty 客戶端
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// Complete 送出單一使用者訊息並回傳第一個選擇的內容
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := ai.ChatRequest{
		Model:       c.model,
		Messages:    []ai.Message{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var result ai.ChatResponse
	var apiErr ai.APIError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = truncate(resp.String(), maxErrorBody)
		}
		common.LogDebug("抽取服務回傳錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.model),
		)
		return "", fmt.Errorf("extractor API error (status %d): %s", resp.StatusCode(), msg)
	}

	content := result.Content()
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	common.LogDebug("抽取服務回應",
		zap.String("model", c.model),
		zap.Int("total_tokens", result.Usage.TotalTokens),
		zap.Int("content_length", len(content)),
	)
	return content, nil
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
