package provider

import (
	"context"
)

// Extraction 外部服務回傳的結構化食材資料
type Extraction struct {
	Ingredients []string           `json:"ingredients"`
	Weights     map[string]float64 `json:"weights"`
	Nova        int                `json:"nova"`
	Confidence  float64            `json:"confidence"`
	Used        bool               `json:"llm_used"`
}

// NotUsed 外部服務未使用或失敗時的哨兵值
func NotUsed() Extraction {
	return Extraction{
		Ingredients: []string{},
		Weights:     map[string]float64{},
		Nova:        2,
		Confidence:  0,
		Used:        false,
	}
}

// Acceptable 信心值高於門檻、有食材且確實呼叫成功
func (e Extraction) Acceptable(minConfidence float64) bool {
	return e.Used && e.Confidence > minConfidence && len(e.Ingredients) > 0
}

// Extractor 將菜名與描述轉為結構化食材資料
//
// 實作不得回傳錯誤；任何失敗都以 NotUsed() 表示。
type Extractor interface {
	Extract(ctx context.Context, name, description string) Extraction
}

// ExtractorFunc 讓一般函式滿足 Extractor
type ExtractorFunc func(ctx context.Context, name, description string) Extraction

// Extract 呼叫 f
func (f ExtractorFunc) Extract(ctx context.Context, name, description string) Extraction {
	return f(ctx, name, description)
}

// Completer 對話補全服務
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
