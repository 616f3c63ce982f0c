// Package enrich turns a raw dish record into structured attributes: ingredients,
// weights, processing level, nutrition grade, dietary tags, allergens, primary
// protein, carbon and cost estimates.
package enrich

import (
	"context"
	"sort"
	"strings"

	"menu-scorer/internal/core/ai/provider"
	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/pkg/common"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	// 規則分析時每項食材的預設份量（公克）
	DefaultPortionGrams = 150.0
	// 食材數上限
	MaxIngredients = 12
	// 外部抽取結果的最低信心值（需嚴格大於）
	DefaultMinConfidence = 0.5
	// 沒有菜單價格也無法估算時的成本
	DefaultCost = 4.0
	// 食材成本佔售價比例
	CostShareOfPrice = 0.30
	// 沒有任何食材時的 Nutri-Score
	DefaultNutriscore = "C"
)

// Enricher 菜品分析器，可安全地併發使用
type Enricher struct {
	tables        *reference.Tables
	extractor     provider.Extractor
	minConfidence float64
}

// Option Enricher 選項
type Option func(*Enricher)

// WithExtractor 設定外部食材抽取服務
func WithExtractor(x provider.Extractor) Option {
	return func(e *Enricher) {
		e.extractor = x
	}
}

// WithMinConfidence 設定接受外部結果的信心門檻
func WithMinConfidence(c float64) Option {
	return func(e *Enricher) {
		e.minConfidence = c
	}
}

// New 建立分析器，tables 為 nil 時使用內建資料表
func New(tables *reference.Tables, opts ...Option) *Enricher {
	if tables == nil {
		tables = reference.Default()
	}
	e := &Enricher{
		tables:        tables,
		minConfidence: DefaultMinConfidence,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tables 使用中的資料表
func (e *Enricher) Tables() *reference.Tables {
	return e.tables
}

// NormalizeText 轉小寫並做 NFC 正規化，讓 "bœuf" 等組合字元能比對
func NormalizeText(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// Enrich 分析單一菜品
func (e *Enricher) Enrich(ctx context.Context, dish common.Dish) common.EnrichedAttributes {
	text := NormalizeText(dish.Name + " " + dish.Description)

	var (
		ingredients []string
		weights     map[string]float64
		nova        int
		used        bool
	)

	if ex := e.extract(ctx, dish); ex.Acceptable(e.minConfidence) {
		ingredients, weights = normalizeExtraction(ex)
		nova = clampNova(ex.Nova)
		used = len(ingredients) > 0
	}
	if !used {
		ingredients = e.extractIngredients(text)
		weights = make(map[string]float64, len(ingredients))
		for _, ing := range ingredients {
			weights[ing] = DefaultPortionGrams
		}
		nova = e.novaScore(text)
	}

	var carbon float64
	if len(weights) > 0 {
		carbon = e.carbonFromWeights(weights)
	} else {
		carbon = e.carbonFromText(text)
	}

	return common.EnrichedAttributes{
		Ingredients:       ingredients,
		IngredientWeights: weights,
		NovaScore:         nova,
		Nutriscore:        e.nutriscore(ingredients),
		SensoryKeywords:   reference.MatchAll(text, e.tables.Sensory),
		DietaryTags:       e.dietaryTags(text),
		Allergens:         e.allergens(text, ingredients),
		PrimaryProtein:    e.primaryProtein(text),
		CarbonEstimate:    carbon,
		EstimatedCost:     e.cost(weights, dish.PriceValue()),
		ExtractorUsed:     used,
	}
}

func (e *Enricher) extract(ctx context.Context, dish common.Dish) provider.Extraction {
	// ctx 結束後不再呼叫外部服務，直接改用關鍵字分析
	if e.extractor == nil || ctx.Err() != nil {
		return provider.NotUsed()
	}
	return e.extractor.Extract(ctx, dish.Name, dish.Description)
}

func normalizeExtraction(ex provider.Extraction) ([]string, map[string]float64) {
	ingredients := make([]string, 0, len(ex.Ingredients))
	seen := make(map[string]bool, len(ex.Ingredients))
	for _, ing := range ex.Ingredients {
		ing = NormalizeText(strings.TrimSpace(ing))
		if ing == "" || seen[ing] {
			continue
		}
		seen[ing] = true
		ingredients = append(ingredients, ing)
		if len(ingredients) == MaxIngredients {
			break
		}
	}
	weights := make(map[string]float64, len(ex.Weights))
	for k, g := range ex.Weights {
		k = NormalizeText(strings.TrimSpace(k))
		if k == "" || g < 0 {
			continue
		}
		weights[k] += g
	}
	return ingredients, weights
}

func clampNova(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 4:
		return 4
	default:
		return n
	}
}

// extractIngredients 依碳排表順序比對，最多 12 項
func (e *Enricher) extractIngredients(text string) []string {
	found := make([]string, 0, MaxIngredients)
	for _, en := range e.tables.Carbon.MatchIn(text) {
		found = append(found, en.Keyword)
		if len(found) == MaxIngredients {
			break
		}
	}
	return found
}

// novaScore 4 → 3 → 1 → 2 的判斷順序
func (e *Enricher) novaScore(text string) int {
	switch {
	case reference.ContainsAny(text, e.tables.UltraProcessedMarkers):
		return 4
	case reference.ContainsAny(text, e.tables.ProcessedMarkers):
		return 3
	case reference.ContainsAny(text, e.tables.FreshMarkers):
		return 1
	default:
		return 2
	}
}

func (e *Enricher) dietaryTags(text string) []string {
	tags := make([]string, 0, 4)
	for _, c := range e.tables.DietaryTags {
		if c.MatchesText(text) {
			tags = append(tags, c.Name)
		}
	}

	// 推論 vegan 時乳蛋算動物性；推論 vegetarian 時不算
	hasAnimal := reference.ContainsAny(text, e.tables.AnimalProducts)
	if !hasAnimal && !reference.In("vegan", tags) && reference.ContainsAny(text, e.tables.PlantProteins) {
		tags = append(tags, "vegan")
	}

	hasMeatFish := reference.ContainsAny(text, e.tables.MeatFishKeywords())
	if !hasMeatFish && !reference.In("vegetarian", tags) && !reference.In("vegan", tags) {
		tags = append(tags, "vegetarian")
	}
	return tags
}

func (e *Enricher) allergens(text string, ingredients []string) []string {
	found := make([]string, 0, 2)
	for _, c := range e.tables.Allergens {
		if c.MatchesText(text) || c.MatchesAny(ingredients) {
			found = append(found, c.Name)
		}
	}
	return found
}

func (e *Enricher) primaryProtein(text string) *string {
	for _, c := range e.tables.ProteinPriority {
		if c.MatchesText(text) {
			name := c.Name
			return &name
		}
	}
	return nil
}

// carbonFromWeights Σ 每公斤碳排 × 公克 / 1000
func (e *Enricher) carbonFromWeights(weights map[string]float64) float64 {
	var total, mass float64
	for _, k := range sortedKeys(weights) {
		g := weights[k]
		mass += g
		total += e.tables.CarbonIntensity(k) * g / 1000
	}
	if mass == 0 {
		return reference.DefaultCarbon
	}
	return total
}

// carbonFromText 文字中出現的最高單項碳排
func (e *Enricher) carbonFromText(text string) float64 {
	matched := e.tables.Carbon.MatchIn(text)
	if len(matched) == 0 {
		return reference.DefaultCarbon
	}
	highest := matched[0].Value
	for _, en := range matched[1:] {
		if en.Value > highest {
			highest = en.Value
		}
	}
	return highest
}

func (e *Enricher) cost(weights map[string]float64, price float64) float64 {
	if price > 0 {
		return price * CostShareOfPrice
	}
	var total float64
	for _, k := range sortedKeys(weights) {
		total += e.tables.UnitPrice(k) * weights[k] / 1000
	}
	if total > 0 {
		return total
	}
	return DefaultCost
}

// AverageGrade 食材營養等級平均，沒有食材時為 3
func (e *Enricher) AverageGrade(ingredients []string) float64 {
	if len(ingredients) == 0 {
		return reference.DefaultNutritionGrade
	}
	var sum float64
	for _, ing := range ingredients {
		sum += e.tables.NutritionGrade(ing)
	}
	return sum / float64(len(ingredients))
}

func (e *Enricher) nutriscore(ingredients []string) string {
	if len(ingredients) == 0 {
		return DefaultNutriscore
	}
	return GradeLetter(e.AverageGrade(ingredients))
}

// GradeLetter 將 1–5 平均值轉為 A–E
func GradeLetter(avg float64) string {
	switch {
	case avg >= 4.5:
		return "A"
	case avg >= 3.5:
		return "B"
	case avg >= 2.5:
		return "C"
	case avg >= 1.5:
		return "D"
	default:
		return "E"
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
