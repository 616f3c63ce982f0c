package scoring

import (
	"sort"

	"menu-scorer/internal/pkg/common"
)

// RestaurantRankings 依餐廳分組計算平均分，依平均分由高到低排序
//
// 分組順序為餐廳在 scored 中第一次出現的順序；平均分相同時保持該順序。
func RestaurantRankings(scored []common.ScoredDish) []common.RestaurantRanking {
	type group struct {
		names  []string
		scores []float64
		plant  int
	}

	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, d := range scored {
		g, ok := groups[d.RestaurantName]
		if !ok {
			g = &group{}
			groups[d.RestaurantName] = g
			order = append(order, d.RestaurantName)
		}
		g.names = append(g.names, d.Name)
		g.scores = append(g.scores, d.TotalScore)
		if d.EnrichedAttributes.IsPlantBased() {
			g.plant++
		}
	}

	rankings := make([]common.RestaurantRanking, 0, len(order))
	for _, name := range order {
		g := groups[name]
		var sum float64
		best := 0
		for i, s := range g.scores {
			sum += s
			if s > g.scores[best] {
				best = i
			}
		}
		n := float64(len(g.scores))
		rankings = append(rankings, common.RestaurantRanking{
			RestaurantName:       name,
			AverageScore:         common.Round(sum/n, 2),
			DishCount:            len(g.names),
			BestDish:             g.names[best],
			PlantBasedPercentage: common.Round(float64(g.plant)/n*100, 1),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].AverageScore > rankings[j].AverageScore
	})
	return rankings
}

// MenuStatistics 整份菜單的平均與比例，沒有菜品時全部為 0
func MenuStatistics(scored []common.ScoredDish) common.MenuStats {
	if len(scored) == 0 {
		return common.MenuStats{}
	}

	var planet, pleasure, fit, total float64
	var plant, highNova int
	for _, d := range scored {
		planet += d.SubScores.SPlanet
		pleasure += d.SubScores.SPleasure
		fit += d.SubScores.SFit
		total += d.TotalScore
		if d.EnrichedAttributes.IsPlantBased() {
			plant++
		}
		if d.EnrichedAttributes.NovaScore >= 3 {
			highNova++
		}
	}

	n := float64(len(scored))
	return common.MenuStats{
		AverageSustainabilityScore: common.Round(planet/n, 2),
		AveragePleasureScore:       common.Round(pleasure/n, 2),
		AverageFitScore:            common.Round(fit/n, 2),
		AverageTotalScore:          common.Round(total/n, 2),
		TotalDishes:                len(scored),
		PlantBasedPercentage:       common.Round(float64(plant)/n*100, 1),
		HighNovaPercentage:         common.Round(float64(highNova)/n*100, 1),
	}
}
