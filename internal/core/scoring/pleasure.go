package scoring

import (
	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/pkg/common"
)

// PleasureScore 感官分數，範圍 [0,10]
func PleasureScore(e common.EnrichedAttributes, t *reference.Tables) float64 {
	score := 6.0
	score += min(float64(len(e.SensoryKeywords))*0.7, 3.0)

	textures := 0
	for _, kw := range e.SensoryKeywords {
		if reference.In(kw, t.TextureWords) {
			textures++
		}
	}
	if textures >= 2 {
		score += 0.8
	}

	switch e.NovaScore {
	case 4:
		score -= 1.5
	case 1:
		score += 0.5
	}

	if e.HasTag("vegan") {
		score += 0.5
	}
	return clamp(score, 0, 10)
}
