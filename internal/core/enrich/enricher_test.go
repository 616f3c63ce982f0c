package enrich

import (
	"context"
	"testing"

	"menu-scorer/internal/core/ai/provider"
	"menu-scorer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(p float64) *float64 { return &p }

func TestEnrichLentilSalad(t *testing.T) {
	e := New(nil)
	got := e.Enrich(context.Background(), common.Dish{
		Name:        "Lentil Salad",
		Description: "lentils, tomato, olive oil",
	})

	assert.Equal(t, []string{"salad", "tomato", "lentils"}, got.Ingredients)
	assert.Equal(t, map[string]float64{"salad": 150, "tomato": 150, "lentils": 150}, got.IngredientWeights)
	assert.InDelta(t, 0.255, got.CarbonEstimate, 1e-9)
	assert.Less(t, got.CarbonEstimate, 1.0)
	assert.Equal(t, []string{"vegan"}, got.DietaryTags)
	assert.Empty(t, got.Allergens)
	assert.Equal(t, 2, got.NovaScore)
	assert.Equal(t, "B", got.Nutriscore)
	require.NotNil(t, got.PrimaryProtein)
	assert.Equal(t, "lentils", *got.PrimaryProtein)
	assert.InDelta(t, 2.325, got.EstimatedCost, 1e-9)
	assert.False(t, got.ExtractorUsed)
}

func TestEnrichBeefBurger(t *testing.T) {
	e := New(nil)
	got := e.Enrich(context.Background(), common.Dish{
		Name:        "Beef Burger",
		Description: "beef, cheese, bun",
		Price:       price(14),
	})

	assert.Equal(t, []string{"beef", "burger", "cheese"}, got.Ingredients)
	assert.InDelta(t, 9.6, got.CarbonEstimate, 1e-9)
	assert.Empty(t, got.DietaryTags)
	assert.Equal(t, []string{"gluten", "lactose"}, got.Allergens)
	assert.Equal(t, "beef", got.Protein())
	assert.InDelta(t, 4.2, got.EstimatedCost, 1e-9)
	assert.Equal(t, "C", got.Nutriscore)
}

func TestDietaryInferenceAsymmetry(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name string
		dish common.Dish
		want []string
	}{
		{
			name: "eggs block vegan but not vegetarian",
			dish: common.Dish{Name: "Omelette", Description: "egg, tofu"},
			want: []string{"vegetarian"},
		},
		{
			name: "explicit label",
			dish: common.Dish{Name: "Bowl", Description: "100% végétal, riz"},
			want: []string{"vegan"},
		},
		{
			name: "meat gets no inferred tag",
			dish: common.Dish{Name: "Poulet basquaise"},
			want: []string{},
		},
		{
			name: "no protein keyword still counts as vegetarian",
			dish: common.Dish{Name: "Soupe", Description: "carottes"},
			want: []string{"vegetarian"},
		},
		{
			name: "halal and local labels",
			dish: common.Dish{Name: "Agneau halal", Description: "élevé en aveyron"},
			want: []string{"halal", "local"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Enrich(context.Background(), tt.dish)
			assert.Equal(t, tt.want, got.DietaryTags)
		})
	}
}

func TestNovaCascade(t *testing.T) {
	e := New(nil)

	tests := []struct {
		text string
		want int
	}{
		{"chicken nuggets", 4},
		{"fresh smoked salmon nuggets", 4},
		{"smoked salmon", 3},
		{"fresh salad", 1},
		{"salade maison", 1},
		{"salad", 2},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, e.novaScore(tt.text))
		})
	}
}

func TestPrimaryProteinPriority(t *testing.T) {
	e := New(nil)

	assert.Equal(t, "lamb", e.Enrich(context.Background(), common.Dish{Name: "Beef and lamb skewers"}).Protein())
	assert.Equal(t, "beef", e.Enrich(context.Background(), common.Dish{Name: "Bœuf bourguignon"}).Protein())
	assert.Equal(t, "tofu", e.Enrich(context.Background(), common.Dish{Name: "Tofu sauté"}).Protein())
	assert.Nil(t, e.Enrich(context.Background(), common.Dish{Name: "Frites"}).PrimaryProtein)
}

func TestEnrichEmptyDish(t *testing.T) {
	got := New(nil).Enrich(context.Background(), common.Dish{})

	assert.Empty(t, got.Ingredients)
	assert.Equal(t, 5.0, got.CarbonEstimate)
	assert.Equal(t, DefaultCost, got.EstimatedCost)
	assert.Equal(t, "C", got.Nutriscore)
	assert.Equal(t, 2, got.NovaScore)
	assert.Nil(t, got.PrimaryProtein)
}

func TestNormalizeTextComposesAccents(t *testing.T) {
	decomposed := "Poulet Ro\u0302ti croustillant"
	got := New(nil).Enrich(context.Background(), common.Dish{Name: decomposed})

	assert.Equal(t, "poulet rôti croustillant", NormalizeText(decomposed))
	assert.Contains(t, got.SensoryKeywords, "rôti")
	assert.Contains(t, got.SensoryKeywords, "croustillant")
}

func TestAllergensMatchIngredientList(t *testing.T) {
	x := provider.ExtractorFunc(func(context.Context, string, string) provider.Extraction {
		return provider.Extraction{
			Ingredients: []string{"tofu", "rice"},
			Weights:     map[string]float64{"tofu": 120, "rice": 150},
			Nova:        2,
			Confidence:  0.8,
			Used:        true,
		}
	})
	got := New(nil, WithExtractor(x)).Enrich(context.Background(), common.Dish{Name: "Buddha bowl"})

	assert.Equal(t, []string{"soy"}, got.Allergens)
}

func TestExtractorAcceptance(t *testing.T) {
	accepted := provider.Extraction{
		Ingredients: []string{"Beef", "potato"},
		Weights:     map[string]float64{"beef": 200, "potato": 150},
		Nova:        1,
		Confidence:  0.9,
		Used:        true,
	}

	tests := []struct {
		name     string
		mutate   func(*provider.Extraction)
		wantUsed bool
	}{
		{name: "accepted", mutate: func(*provider.Extraction) {}, wantUsed: true},
		{name: "confidence at threshold", mutate: func(x *provider.Extraction) { x.Confidence = 0.5 }},
		{name: "no ingredients", mutate: func(x *provider.Extraction) { x.Ingredients = nil }},
		{name: "not invoked", mutate: func(x *provider.Extraction) { x.Used = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := accepted
			tt.mutate(&ex)
			x := provider.ExtractorFunc(func(context.Context, string, string) provider.Extraction { return ex })

			got := New(nil, WithExtractor(x)).Enrich(context.Background(), common.Dish{
				Name:        "Steak frites",
				Description: "smoked beef",
			})

			assert.Equal(t, tt.wantUsed, got.ExtractorUsed)
			if tt.wantUsed {
				assert.Equal(t, []string{"beef", "potato"}, got.Ingredients)
				assert.InDelta(t, 5.645, got.CarbonEstimate, 1e-9)
				assert.Equal(t, 1, got.NovaScore)
			} else {
				assert.Equal(t, []string{"beef", "steak"}, got.Ingredients)
				assert.Equal(t, 3, got.NovaScore)
			}
		})
	}
}

func TestExtractorNovaClamped(t *testing.T) {
	x := provider.ExtractorFunc(func(context.Context, string, string) provider.Extraction {
		return provider.Extraction{Ingredients: []string{"pasta"}, Nova: 9, Confidence: 1, Used: true}
	})
	got := New(nil, WithExtractor(x)).Enrich(context.Background(), common.Dish{Name: "Pasta"})

	assert.Equal(t, 4, got.NovaScore)
	assert.True(t, got.ExtractorUsed)
	// 沒有份量時退回文字中的最高碳排
	assert.Equal(t, 0.5, got.CarbonEstimate)
}

func TestIngredientCap(t *testing.T) {
	got := New(nil).Enrich(context.Background(), common.Dish{
		Name:        "Everything plate",
		Description: "beef lamb veal pork chicken duck shrimp salmon tuna butter cheese rice pasta bread potato",
	})
	assert.Len(t, got.Ingredients, MaxIngredients)
}

func TestGradeLetter(t *testing.T) {
	assert.Equal(t, "A", GradeLetter(4.5))
	assert.Equal(t, "B", GradeLetter(3.5))
	assert.Equal(t, "C", GradeLetter(2.5))
	assert.Equal(t, "D", GradeLetter(1.5))
	assert.Equal(t, "E", GradeLetter(1.49))
}

func TestReferenceKeywordCorrections(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name       string
		dish       common.Dish
		nutriscore string // 空字串時不檢查
		nova       int
	}{
		{
			name:       "escargots carries its nutrition grade",
			dish:       common.Dish{Name: "Escargots"},
			nutriscore: "B",
			nova:       2,
		},
		{
			name:       "vsm marker matches lowercased text",
			dish: common.Dish{Name: "Pâté VSM"},
			nova: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Enrich(context.Background(), tt.dish)
			assert.Equal(t, tt.nova, got.NovaScore)
			if tt.nutriscore != "" {
				assert.Equal(t, tt.nutriscore, got.Nutriscore)
			}
		})
	}
}

func TestEstimatedCostPriceHandling(t *testing.T) {
	e := New(nil)
	const massWeighted = 2.325

	tests := []struct {
		name  string
		price *float64
		want  float64
	}{
		{name: "missing price", price: nil, want: massWeighted},
		{name: "zero price", price: price(0), want: massWeighted},
		{name: "negative price", price: price(-5), want: massWeighted},
		{name: "positive price", price: price(10), want: 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Enrich(context.Background(), common.Dish{
				Name:        "Lentil Salad",
				Description: "lentils, tomato, olive oil",
				Price:       tt.price,
			})
			assert.InDelta(t, tt.want, got.EstimatedCost, 1e-9)
		})
	}
}
