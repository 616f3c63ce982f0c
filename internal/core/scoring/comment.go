package scoring

import (
	"fmt"
	"strings"

	"menu-scorer/internal/pkg/common"
)

const commentSeparator = " • "

// consumerComment 消費者模式的短評，分數使用未四捨五入的值
func consumerComment(e common.EnrichedAttributes, planet, pleasure, fit float64) string {
	var parts []string

	if len(e.Allergens) > 0 {
		parts = append(parts, "⚠️ Allergènes: "+strings.Join(firstN(e.Allergens, 3), ", "))
	}
	if e.Nutriscore == "A" || e.Nutriscore == "B" {
		parts = append(parts, "Nutri-Score "+e.Nutriscore)
	}
	if fit >= 7.0 {
		parts = append(parts, "Parfait pour vous")
	}
	if planet >= 8.0 {
		parts = append(parts, "Éco-responsable")
	}
	if pleasure >= 7.0 {
		parts = append(parts, "Très savoureux")
	}
	if len(e.DietaryTags) > 0 {
		parts = append(parts, strings.Join(firstN(e.DietaryTags, 2), ", "))
	}

	if len(parts) == 0 {
		return "Bonne option"
	}
	return strings.Join(parts, commentSeparator)
}

// restaurantComment 餐廳模式的短評
func restaurantComment(e common.EnrichedAttributes, planet float64) string {
	var parts []string

	if planet >= 8.0 {
		parts = append(parts, "Plat star durable")
	} else if planet < 4.0 {
		parts = append(parts, "Forte empreinte carbone")
	}
	if n := len(e.DietaryTags); n >= 2 {
		parts = append(parts, fmt.Sprintf("Inclusif (%d régimes)", n))
	}
	if e.NovaScore >= 3 {
		parts = append(parts, fmt.Sprintf("NOVA %d - Transformé", e.NovaScore))
	}

	if len(parts) == 0 {
		return "Plat standard"
	}
	return strings.Join(parts, commentSeparator)
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
