package scoring

import (
	"strings"

	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/pkg/common"
)

// PlanetScore 依碳排分級的環境分數，範圍 [1,10]
//
// 植物性加分與肉類扣分只在最高碳排區間內生效。
func PlanetScore(e common.EnrichedAttributes, t *reference.Tables) float64 {
	carbon := e.CarbonEstimate

	var score float64
	switch {
	case carbon < 1.0:
		score = 10.0
	case carbon < 2.5:
		score = 6.5
	case carbon < 4.0:
		score = 5.0
	case carbon < 6.0:
		score = 3.0
	case carbon < 8.0:
		score = 2.0
	default:
		score = 1.0
		if e.HasTag("vegan") {
			score = min(10.0, score+1.0)
		} else if e.HasTag("vegetarian") {
			score = min(10.0, score+0.5)
		}
		if ingredientsMention(e.Ingredients, t.PlanetMeatKeywords) {
			score = max(1.0, score-1.0)
		}
	}
	return clamp(score, 1, 10)
}

// ingredientsMention 任一食材名稱包含任一關鍵字
func ingredientsMention(ingredients, keywords []string) bool {
	for _, ing := range ingredients {
		ing = strings.ToLower(ing)
		for _, kw := range keywords {
			if strings.Contains(ing, kw) {
				return true
			}
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
