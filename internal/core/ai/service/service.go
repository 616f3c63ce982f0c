// Package service 以大型語言模型抽取菜品食材
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"menu-scorer/internal/core/ai/cache"
	"menu-scorer/internal/core/ai/provider"
	"menu-scorer/internal/core/ai/queue"
	"menu-scorer/internal/infrastructure/metrics"
	"menu-scorer/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultTimeout 單次抽取的時間上限
const DefaultTimeout = 20 * time.Second

const promptTemplate = `Tu es un expert en analyse alimentaire. Analyse ce plat de restaurant français.

Plat: %s
Description: %s

Retourne UNIQUEMENT un JSON valide avec:
- ingredients: liste des ingrédients principaux (en anglais, minuscules, ex: ["beef", "potato", "carrot"])
- weights: dictionnaire ingrédient:grammes (portions réalistes, ex: {"beef": 200, "potato": 150})
- nova: 1-4 (1=frais/non transformé, 2=ingrédients culinaires, 3=aliments transformés, 4=ultra-transformés)
- confidence: 0.0-1.0 (ta confiance dans l'analyse)

Exemple de sortie:
{"ingredients": ["beef", "potato", "carrot"], "weights": {"beef": 200, "potato": 150, "carrot": 80}, "nova": 1, "confidence": 0.9}

Retourne UNIQUEMENT le JSON, sans explication.`

// ErrInvalidPayload 模型回覆缺少必要欄位或不是 JSON
var ErrInvalidPayload = errors.New("invalid extraction payload")

// Service 食材抽取服務，實作 provider.Extractor
type Service struct {
	completer provider.Completer
	cache     cache.Store
	queue     *queue.Manager
	timeout   time.Duration
	metrics   *metrics.ExtractorMetrics
}

// Option Service 選項
type Option func(*Service)

// WithCache 設定結果快取
func WithCache(store cache.Store) Option {
	return func(s *Service) {
		s.cache = store
	}
}

// WithQueue 設定併發上限
func WithQueue(q *queue.Manager) Option {
	return func(s *Service) {
		s.queue = q
	}
}

// WithTimeout 設定單次呼叫時間上限
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMetrics 設定指標
func WithMetrics(m *metrics.ExtractorMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService 建立抽取服務
func NewService(completer provider.Completer, opts ...Option) *Service {
	s := &Service{
		completer: completer,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildPrompt 組出抽取提示詞
func BuildPrompt(name, description string) string {
	return fmt.Sprintf(promptTemplate, name, description)
}

// Extract 呼叫模型抽取食材，任何失敗都回傳 provider.NotUsed()
func (s *Service) Extract(ctx context.Context, name, description string) provider.Extraction {
	key := cache.Key(name, description)
	if ex, ok := s.lookup(ctx, key); ok {
		s.metrics.RecordExtraction(metrics.OutcomeCached, 0)
		return ex
	}

	start := time.Now()
	content, err := s.complete(ctx, BuildPrompt(name, description))
	elapsed := time.Since(start)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		s.metrics.RecordExtraction(outcome, elapsed.Seconds())
		common.LogExtraction(outcome, name, elapsed, err)
		return provider.NotUsed()
	}

	ex, err := ParseExtraction(content)
	if err != nil {
		s.metrics.RecordExtraction(metrics.OutcomeRejected, elapsed.Seconds())
		common.LogExtraction(metrics.OutcomeRejected, name, elapsed, err)
		return provider.NotUsed()
	}

	s.metrics.RecordExtraction(metrics.OutcomeAccepted, elapsed.Seconds())
	common.LogExtraction(metrics.OutcomeAccepted, name, elapsed, nil)
	s.store(ctx, key, ex)
	return ex
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var content string
	call := func(ctx context.Context) error {
		s.metrics.InFlight(1)
		defer s.metrics.InFlight(-1)
		var err error
		content, err = s.completer.Complete(ctx, prompt)
		return err
	}

	var err error
	if s.queue != nil {
		err = s.queue.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return content, err
}

func (s *Service) lookup(ctx context.Context, key string) (provider.Extraction, bool) {
	if s.cache == nil {
		return provider.Extraction{}, false
	}
	ex, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.RecordCacheLookup(s.cache.Backend(), true)
		common.LogCacheHit(s.cache.Backend())
		return ex, true
	case errors.Is(err, common.ErrCacheMiss):
		s.metrics.RecordCacheLookup(s.cache.Backend(), false)
		common.LogCacheMiss(s.cache.Backend())
	default:
		common.LogWarn("快取讀取失敗", zap.String("backend", s.cache.Backend()), zap.Error(err))
	}
	return provider.Extraction{}, false
}

func (s *Service) store(ctx context.Context, key string, ex provider.Extraction) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, ex); err != nil {
		common.LogWarn("快取寫入失敗", zap.String("backend", s.cache.Backend()), zap.Error(err))
	}
}

// rawExtraction 指標欄位用來判斷鍵是否存在
type rawExtraction struct {
	Ingredients *[]string           `json:"ingredients"`
	Weights     *map[string]float64 `json:"weights"`
	Nova        *float64            `json:"nova"`
	Confidence  float64             `json:"confidence"`
}

// ParseExtraction 解析模型回覆
//
// 取第一個 { 到最後一個 } 之間的內容，且必須包含 ingredients、weights、nova。
func ParseExtraction(content string) (provider.Extraction, error) {
	obj, ok := common.ExtractJSONObject(content)
	if !ok {
		return provider.Extraction{}, fmt.Errorf("%w: no JSON object", ErrInvalidPayload)
	}

	var raw rawExtraction
	if err := common.ParseJSON(obj, &raw); err != nil {
		if retryErr := common.ParseJSON(common.QuoteJSONKeys(obj), &raw); retryErr != nil {
			return provider.Extraction{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	if raw.Ingredients == nil || raw.Weights == nil || raw.Nova == nil {
		return provider.Extraction{}, fmt.Errorf("%w: missing ingredients, weights or nova", ErrInvalidPayload)
	}

	weights := *raw.Weights
	if weights == nil {
		weights = map[string]float64{}
	}
	return provider.Extraction{
		Ingredients: *raw.Ingredients,
		Weights:     weights,
		Nova:        int(math.Round(*raw.Nova)),
		Confidence:  raw.Confidence,
		Used:        true,
	}, nil
}
