package common

import "strings"

// 菜品欄位預設值
const (
	DefaultDishName       = "Unknown Dish"
	DefaultRestaurantName = "Unknown"
)

// Dish 菜單上的一道菜
type Dish struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          *float64 `json:"price"`
	RestaurantName string   `json:"restaurant_name"`
}

// Normalized 補上缺漏欄位的預設值
func (d Dish) Normalized() Dish {
	if strings.TrimSpace(d.Name) == "" {
		d.Name = DefaultDishName
	}
	if strings.TrimSpace(d.RestaurantName) == "" {
		d.RestaurantName = DefaultRestaurantName
	}
	return d
}

// PriceValue 回傳價格，未填時為 0
func (d Dish) PriceValue() float64 {
	if d.Price == nil {
		return 0
	}
	return *d.Price
}

// UserProfile 消費者的飲食偏好
type UserProfile struct {
	DietaryRestriction string   `json:"dietary_restriction"` // vegan, vegetarian, gluten-free, halal 或空字串
	Goal               string   `json:"goal"`                // weight_loss, muscle_gain, athlete 或空字串
	Allergens          []string `json:"allergens"`
	StrictFilter       bool     `json:"strict_filter"` // true 時不相容的菜品直接排除
}

// DefaultUserProfile 未提供偏好時使用
func DefaultUserProfile() UserProfile {
	return UserProfile{
		Allergens:    []string{},
		StrictFilter: true,
	}
}

// Normalized 統一大小寫並去除空白
func (p UserProfile) Normalized() UserProfile {
	p.DietaryRestriction = strings.ToLower(strings.TrimSpace(p.DietaryRestriction))
	p.Goal = strings.ToLower(strings.TrimSpace(p.Goal))
	allergens := make([]string, 0, len(p.Allergens))
	for _, a := range p.Allergens {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			allergens = append(allergens, a)
		}
	}
	p.Allergens = allergens
	return p
}

// EnrichedAttributes 菜品分析結果
type EnrichedAttributes struct {
	Ingredients       []string           `json:"ingredients"`
	IngredientWeights map[string]float64 `json:"ingredient_weights"`
	NovaScore         int                `json:"nova_score"`
	Nutriscore        string             `json:"nutriscore"`
	SensoryKeywords   []string           `json:"sensory_keywords"`
	DietaryTags       []string           `json:"dietary_tags"`
	Allergens         []string           `json:"allergens"`
	PrimaryProtein    *string            `json:"primary_protein"`
	CarbonEstimate    float64            `json:"carbon_estimate"`
	EstimatedCost     float64            `json:"estimated_cost"`
	ExtractorUsed     bool               `json:"extractor_used"`
}

// HasTag 是否帶有指定飲食標籤
func (e EnrichedAttributes) HasTag(tag string) bool {
	return containsString(e.DietaryTags, tag)
}

// HasAllergen 是否含有指定過敏原
func (e EnrichedAttributes) HasAllergen(allergen string) bool {
	return containsString(e.Allergens, allergen)
}

// IsPlantBased vegan 或 vegetarian
func (e EnrichedAttributes) IsPlantBased() bool {
	return e.HasTag("vegan") || e.HasTag("vegetarian")
}

// Protein 主要蛋白質，沒有時為空字串
func (e EnrichedAttributes) Protein() string {
	if e.PrimaryProtein == nil {
		return ""
	}
	return *e.PrimaryProtein
}

// SubScores 三個子分數
type SubScores struct {
	SPlanet   float64 `json:"s_planet"`
	SPleasure float64 `json:"s_pleasure"`
	SFit      float64 `json:"s_fit"`
}

// ScoredDish 評分後的菜品
type ScoredDish struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Price              *float64           `json:"price"`
	RestaurantName     string             `json:"restaurant_name"`
	TotalScore         float64            `json:"total_score"`
	SubScores          SubScores          `json:"sub_scores"`
	RankIndex          int                `json:"rank_index"`
	Comment            string             `json:"comment"`
	EnrichedAttributes EnrichedAttributes `json:"enriched_attributes"`
}

// RestaurantRanking 餐廳排名
type RestaurantRanking struct {
	RestaurantName       string  `json:"restaurant_name"`
	AverageScore         float64 `json:"average_score"`
	DishCount            int     `json:"dish_count"`
	BestDish             string  `json:"best_dish"`
	PlantBasedPercentage float64 `json:"plant_based_percentage"`
}

// SwapSuggestion 食材替換建議
type SwapSuggestion struct {
	DishID               int     `json:"dish_id"`
	DishName             string  `json:"dish_name"`
	CurrentIngredient    string  `json:"current_ingredient"`
	SuggestedIngredient  string  `json:"suggested_ingredient"`
	EstimatedSavingsCO2  float64 `json:"estimated_savings_co2"`
	EstimatedSavingsCost float64 `json:"estimated_savings_cost"`
	ScoreImprovement     float64 `json:"score_improvement"`
	Rationale            string  `json:"rationale"`
}

// MenuStats 整份菜單的統計
type MenuStats struct {
	AverageSustainabilityScore float64 `json:"average_sustainability_score"`
	AveragePleasureScore       float64 `json:"average_pleasure_score"`
	AverageFitScore            float64 `json:"average_fit_score"`
	AverageTotalScore          float64 `json:"average_total_score"`
	TotalDishes                int     `json:"total_dishes"`
	PlantBasedPercentage       float64 `json:"plant_based_percentage"`
	HighNovaPercentage         float64 `json:"high_nova_percentage"`
}

// FilterInfo 消費者模式下被過濾的菜品資訊
type FilterInfo struct {
	FilteredOutCount      int    `json:"filtered_out_count"`
	CompatibleDishesFound int    `json:"compatible_dishes_found"`
	Message               string `json:"message"`
}

// MenuAnalysisResult 菜單分析結果
type MenuAnalysisResult struct {
	ScoredDishes       []ScoredDish        `json:"scored_dishes"`
	OverallMenuStats   MenuStats           `json:"overall_menu_stats"`
	RestaurantRankings []RestaurantRanking `json:"restaurant_rankings"`
	SwapSuggestions    []SwapSuggestion    `json:"swap_suggestions"` // 只有餐廳模式才有
	FilterInfo         *FilterInfo         `json:"filter_info,omitempty"`
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
