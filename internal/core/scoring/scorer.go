// Package scoring 菜單評分：子分數、總分排序、餐廳排名、替換建議與統計
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"menu-scorer/internal/core/enrich"
	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/infrastructure/metrics"
	"menu-scorer/internal/pkg/common"

	"golang.org/x/sync/errgroup"
)

// 總分權重
const (
	WeightFit      = 0.25
	WeightPleasure = 0.30
	WeightPlanet   = 0.45
)

// 評分模式
const (
	ModeConsumer   = "consumer"
	ModeRestaurant = "restaurant"
)

// DefaultWorkers 同時分析的菜品數
const DefaultWorkers = 8

// Scorer 菜單評分器，可安全地併發使用
type Scorer struct {
	enricher *enrich.Enricher
	tables   *reference.Tables
	workers  int
	metrics  *metrics.ScoringMetrics
}

// Option Scorer 選項
type Option func(*Scorer)

// WithWorkers 設定並行分析數，小於 1 時忽略
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMetrics 設定評分指標
func WithMetrics(m *metrics.ScoringMetrics) Option {
	return func(s *Scorer) {
		s.metrics = m
	}
}

// NewScorer 建立評分器，enricher 為 nil 時使用內建資料表且不呼叫外部服務
func NewScorer(enricher *enrich.Enricher, opts ...Option) *Scorer {
	if enricher == nil {
		enricher = enrich.New(nil)
	}
	s := &Scorer{
		enricher: enricher,
		tables:   enricher.Tables(),
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreMenuForConsumer 以內建資料表為消費者評分
func ScoreMenuForConsumer(menu []common.Dish, profile common.UserProfile, topN int) *common.MenuAnalysisResult {
	res, _ := NewScorer(nil).ScoreForConsumer(context.Background(), menu, profile, topN)
	return res
}

// ScoreMenuForRestaurant 以內建資料表為餐廳評分
func ScoreMenuForRestaurant(menu []common.Dish, topN int) *common.MenuAnalysisResult {
	res, _ := NewScorer(nil).ScoreForRestaurant(context.Background(), menu, topN)
	return res
}

// ScoreForConsumer 消費者模式：過濾不相容菜品後排序
//
// topN <= 0 時回傳全部菜品。只有 ctx 被取消時才會回傳錯誤；逾時只會停用外部抽取。
func (s *Scorer) ScoreForConsumer(ctx context.Context, menu []common.Dish, profile common.UserProfile, topN int) (*common.MenuAnalysisResult, error) {
	start := time.Now()
	profile = profile.Normalized()

	dishes, enriched, err := s.enrichAll(ctx, menu)
	if err != nil {
		return nil, err
	}

	scored := make([]common.ScoredDish, 0, len(dishes))
	filtered := 0
	for i, d := range dishes {
		e := enriched[i]
		planet := PlanetScore(e, s.tables)
		pleasure := PleasureScore(e, s.tables)
		fit := ConsumerFit(e, profile, s.tables)
		if fit == 0 {
			filtered++
			continue
		}
		scored = append(scored, buildScoredDish(d, e, planet, pleasure, fit, consumerComment(e, planet, pleasure, fit)))
	}

	rank(scored)

	result := &common.MenuAnalysisResult{
		ScoredDishes:       truncate(scored, topN),
		OverallMenuStats:   MenuStatistics(scored),
		RestaurantRankings: RestaurantRankings(scored),
	}
	if filtered > 0 {
		result.FilterInfo = &common.FilterInfo{
			FilteredOutCount:      filtered,
			CompatibleDishesFound: len(scored),
			Message:               fmt.Sprintf("🔍 %d plats filtrés selon vos préférences alimentaires", filtered),
		}
	}

	s.record(ModeConsumer, len(dishes), len(scored), filtered, time.Since(start))
	return result, nil
}

// ScoreForRestaurant 餐廳模式：所有菜品都會評分，並附替換建議
func (s *Scorer) ScoreForRestaurant(ctx context.Context, menu []common.Dish, topN int) (*common.MenuAnalysisResult, error) {
	start := time.Now()

	dishes, enriched, err := s.enrichAll(ctx, menu)
	if err != nil {
		return nil, err
	}

	scored := make([]common.ScoredDish, 0, len(dishes))
	for i, d := range dishes {
		e := enriched[i]
		planet := PlanetScore(e, s.tables)
		pleasure := PleasureScore(e, s.tables)
		fit := RestaurantFit(e, s.tables)
		scored = append(scored, buildScoredDish(d, e, planet, pleasure, fit, restaurantComment(e, planet)))
	}

	rank(scored)

	result := &common.MenuAnalysisResult{
		ScoredDishes:       truncate(scored, topN),
		OverallMenuStats:   MenuStatistics(scored),
		RestaurantRankings: RestaurantRankings(scored),
		SwapSuggestions:    GenerateSwaps(scored, s.tables.SwapRules),
	}

	s.record(ModeRestaurant, len(dishes), len(scored), 0, time.Since(start))
	return result, nil
}

// DishAnalysis 單一菜品的完整分析
type DishAnalysis struct {
	Dish               common.Dish               `json:"dish"`
	EnrichedAttributes common.EnrichedAttributes `json:"enriched_attributes"`
	SPlanet            float64                   `json:"s_planet"`
	SPleasure          float64                   `json:"s_pleasure"`
	SFitConsumer       float64                   `json:"s_fit_consumer"`
	SFitRestaurant     float64                   `json:"s_fit_restaurant"`
	ConsumerComment    string                    `json:"consumer_comment"`
	RestaurantComment  string                    `json:"restaurant_comment"`
}

// AnalyzeDish 分析單一菜品並計算兩種模式的分數
func (s *Scorer) AnalyzeDish(ctx context.Context, dish common.Dish, profile common.UserProfile) DishAnalysis {
	dish = dish.Normalized()
	e := s.enricher.Enrich(ctx, dish)
	planet := PlanetScore(e, s.tables)
	pleasure := PleasureScore(e, s.tables)
	fit := ConsumerFit(e, profile, s.tables)

	return DishAnalysis{
		Dish:               dish,
		EnrichedAttributes: e,
		SPlanet:            common.Round(planet, 2),
		SPleasure:          common.Round(pleasure, 2),
		SFitConsumer:       common.Round(fit, 2),
		SFitRestaurant:     common.Round(RestaurantFit(e, s.tables), 2),
		ConsumerComment:    consumerComment(e, planet, pleasure, fit),
		RestaurantComment:  restaurantComment(e, planet),
	}
}

// enrichAll 並行分析所有菜品，結果依輸入順序存放
//
// ctx 逾時後剩餘菜品只做關鍵字分析，整份菜單仍會完成；只有 ctx 被取消時才回傳錯誤。
func (s *Scorer) enrichAll(ctx context.Context, menu []common.Dish) ([]common.Dish, []common.EnrichedAttributes, error) {
	dishes := make([]common.Dish, len(menu))
	for i, d := range menu {
		dishes[i] = d.Normalized()
	}
	enriched := make([]common.EnrichedAttributes, len(dishes))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range dishes {
		g.Go(func() error {
			if err := ctx.Err(); errors.Is(err, context.Canceled) {
				return err
			}
			enriched[i] = s.enricher.Enrich(ctx, dishes[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return nil, nil, err
	}
	return dishes, enriched, nil
}

func buildScoredDish(d common.Dish, e common.EnrichedAttributes, planet, pleasure, fit float64, comment string) common.ScoredDish {
	total := fit*WeightFit + pleasure*WeightPleasure + planet*WeightPlanet
	return common.ScoredDish{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		Price:          d.Price,
		RestaurantName: d.RestaurantName,
		TotalScore:     common.Round(total, 2),
		SubScores: common.SubScores{
			SPlanet:   common.Round(planet, 2),
			SPleasure: common.Round(pleasure, 2),
			SFit:      common.Round(fit, 2),
		},
		Comment:            comment,
		EnrichedAttributes: e,
	}
}

// rank 依總分穩定排序（高到低）並寫入名次
func rank(scored []common.ScoredDish) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	for i := range scored {
		scored[i].RankIndex = i
	}
}

func truncate(scored []common.ScoredDish, topN int) []common.ScoredDish {
	if topN > 0 && len(scored) > topN {
		return scored[:topN]
	}
	return scored
}

func (s *Scorer) record(mode string, dishes, scored, filtered int, d time.Duration) {
	s.metrics.RecordMenuScored(mode, scored, filtered, d.Seconds())
	common.LogMenuScored(mode, dishes, scored, filtered, d)
}
