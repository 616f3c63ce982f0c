package reference

import "sync"

// 查不到食材時使用的預設值
const (
	DefaultNutritionGrade = 3.0  // 1–5，對應 E–A
	DefaultCarbon         = 5.0  // kg CO2e / kg
	DefaultPrice          = 10.0 // € / kg
)

// Tables 所有參考資料
type Tables struct {
	Prices    *Table // € / kg
	Nutrition *Table // 5=A … 1=E
	Carbon    *Table // kg CO2e / kg，順序決定規則抽取的食材順序

	Allergens   []Category
	DietaryTags []Category

	Sensory      []string
	TextureWords []string

	UltraProcessedMarkers []string // NOVA 4
	ProcessedMarkers      []string // NOVA 3
	FreshMarkers          []string // NOVA 1

	AnimalProducts        []string // 推論 vegan 時排除
	NonMeatAnimalProducts []string // 推論 vegetarian 時不算肉類
	PlantProteins         []string

	ProteinPriority []Category

	PlanetMeatKeywords   []string // 高碳區間的肉類懲罰
	MeatFishProteins     []string // vegetarian 限制下的明確肉魚
	PorkProteins         []string
	PorkIngredients      []string
	VeganUnsafeAllergens []string
	LeanProteins         []string // 增肌目標
	PlantProteinNames    []string // 增肌目標的植物蛋白加分

	SwapRules []SwapRule
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default 回傳內建資料表，呼叫端不得修改
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = builtin()
	})
	return defaultTables
}

// UnitPrice 每公斤價格
func (t *Tables) UnitPrice(ingredient string) float64 {
	return t.Prices.ValueOr(ingredient, DefaultPrice)
}

// NutritionGrade 營養等級 1–5
func (t *Tables) NutritionGrade(ingredient string) float64 {
	return t.Nutrition.ValueOr(ingredient, DefaultNutritionGrade)
}

// CarbonIntensity 每公斤碳排
func (t *Tables) CarbonIntensity(ingredient string) float64 {
	return t.Carbon.ValueOr(ingredient, DefaultCarbon)
}

// MeatFishKeywords 動物性關鍵字扣除乳蛋蜂蜜
func (t *Tables) MeatFishKeywords() []string {
	out := make([]string, 0, len(t.AnimalProducts))
	for _, p := range t.AnimalProducts {
		if !In(p, t.NonMeatAnimalProducts) {
			out = append(out, p)
		}
	}
	return out
}

// Clone 深拷貝，供覆寫設定使用
func (t *Tables) Clone() *Tables {
	c := *t
	c.Prices = NewTable(t.Prices.Entries()...)
	c.Nutrition = NewTable(t.Nutrition.Entries()...)
	c.Carbon = NewTable(t.Carbon.Entries()...)
	c.Allergens = cloneCategories(t.Allergens)
	c.DietaryTags = cloneCategories(t.DietaryTags)
	c.ProteinPriority = cloneCategories(t.ProteinPriority)
	c.SwapRules = append([]SwapRule(nil), t.SwapRules...)
	return &c
}

func cloneCategories(in []Category) []Category {
	out := make([]Category, len(in))
	for i, c := range in {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}
