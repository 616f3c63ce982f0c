package scoring

import (
	"fmt"

	"menu-scorer/internal/core/enrich"
	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/pkg/common"
)

// GenerateSwaps 每道菜套用第一條符合的替換規則
func GenerateSwaps(scored []common.ScoredDish, rules []reference.SwapRule) []common.SwapSuggestion {
	swaps := make([]common.SwapSuggestion, 0)

	for _, dish := range scored {
		text := enrich.NormalizeText(dish.Name + " " + dish.Description)
		for _, rule := range rules {
			if !rule.Matches(text) {
				continue
			}
			co2 := rule.CO2Saved()
			cost := rule.CostSaved()
			swaps = append(swaps, common.SwapSuggestion{
				DishID:               dish.ID,
				DishName:             dish.Name,
				CurrentIngredient:    rule.CurrentName,
				SuggestedIngredient:  rule.Replacement,
				EstimatedSavingsCO2:  common.Round(co2, 2),
				EstimatedSavingsCost: common.Round(cost, 2),
				ScoreImprovement:     common.Round(10.0-dish.SubScores.SPlanet, 2),
				Rationale:            fmt.Sprintf("💰 Économie: %.2f€/plat • 🌍 -%.1fkg CO2e", cost, co2),
			})
			break
		}
	}
	return swaps
}
