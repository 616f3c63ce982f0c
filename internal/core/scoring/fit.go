package scoring

import (
	"strings"

	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/pkg/common"
)

var nutriBonus = map[string]float64{
	"A": 2.5,
	"B": 1.5,
	"C": 0.0,
	"D": -1.5,
	"E": -2.5,
}

// ConsumerFit 消費者偏好契合度，範圍 [0,10]
//
// 回傳 0 代表不相容，消費者模式會把這道菜過濾掉。
func ConsumerFit(e common.EnrichedAttributes, profile common.UserProfile, t *reference.Tables) float64 {
	profile = profile.Normalized()

	for _, a := range profile.Allergens {
		if e.HasAllergen(a) {
			return 0
		}
	}

	score := 5.0 + nutriBonus[e.Nutriscore]

	adj, ok := restrictionAdjustment(e, profile, t)
	if !ok {
		return 0
	}
	score += adj
	score += goalAdjustment(e, profile.Goal, t)

	return clamp(score, 0, 10)
}

// restrictionAdjustment 飲食限制的加減分；ok=false 表示嚴格模式下直接排除
func restrictionAdjustment(e common.EnrichedAttributes, p common.UserProfile, t *reference.Tables) (float64, bool) {
	// strict 時不相容回傳 (0,false)，否則套用扣分
	penalty := func(v float64) (float64, bool) {
		if p.StrictFilter {
			return 0, false
		}
		return v, true
	}
	protein := e.Protein()

	switch p.DietaryRestriction {
	case "vegan":
		switch {
		case e.HasTag("vegan"):
			return 4.0, true
		case e.HasTag("vegetarian"):
			for _, a := range t.VeganUnsafeAllergens {
				if e.HasAllergen(a) {
					return penalty(-2.0)
				}
			}
			return 1.0, true
		default:
			return penalty(-3.0)
		}

	case "vegetarian":
		switch {
		case e.IsPlantBased():
			return 3.5, true
		case reference.In(protein, t.MeatFishProteins):
			return penalty(-2.5)
		default:
			// 無法判斷的菜品在嚴格模式下一併排除
			return penalty(-1.0)
		}

	case "gluten-free":
		switch {
		case e.HasTag("gluten-free"):
			return 3.5, true
		case e.HasAllergen("gluten"):
			return penalty(-3.0)
		}
		return 0, true

	case "halal":
		if e.HasTag("halal") {
			return 4.0, true
		}
		pork := reference.In(protein, t.PorkProteins)
		for _, ing := range e.Ingredients {
			if reference.In(ing, t.PorkIngredients) {
				pork = true
				break
			}
		}
		if pork {
			return penalty(-5.0)
		}
		return 0, true

	case "":
		switch {
		case e.HasTag("vegan"):
			return 1.5, true
		case e.HasTag("vegetarian"):
			return 1.0, true
		}
	}
	return 0, true
}

func goalAdjustment(e common.EnrichedAttributes, goal string, t *reference.Tables) float64 {
	var adj float64
	switch {
	case strings.Contains(goal, "weight_loss") || strings.Contains(goal, "perte"):
		if e.CarbonEstimate < 5.0 && e.NovaScore <= 2 {
			adj += 2.0
		}
		if e.IsPlantBased() {
			adj += 1.0
		}
	case strings.Contains(goal, "muscle") || strings.Contains(goal, "sport") || strings.Contains(goal, "athlete"):
		protein := e.Protein()
		if reference.In(protein, t.LeanProteins) {
			adj += 2.0
		}
		if reference.In(protein, t.PlantProteinNames) {
			adj += 0.5
		}
	}
	return adj
}

// RestaurantFit 對餐廳經營的契合度，範圍 [0,10]
func RestaurantFit(e common.EnrichedAttributes, t *reference.Tables) float64 {
	score := 5.0

	switch {
	case e.HasTag("vegan"):
		score += 3.0
	case e.HasTag("vegetarian"):
		score += 2.0
	case e.HasTag("pescatarian"):
		score += 1.0
	}

	score -= float64(len(e.Allergens)) * 0.5

	switch avg := averageGrade(e.Ingredients, t); {
	case avg >= 4.0:
		score += 2.0
	case avg >= 3.0:
		score += 1.0
	}

	if e.CarbonEstimate > 6.0 {
		score -= 1.0
	}
	return clamp(score, 0, 10)
}

func averageGrade(ingredients []string, t *reference.Tables) float64 {
	if len(ingredients) == 0 {
		return reference.DefaultNutritionGrade
	}
	var sum float64
	for _, ing := range ingredients {
		sum += t.NutritionGrade(ing)
	}
	return sum / float64(len(ingredients))
}
