package scoring

import (
	"testing"

	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestPlanetScoreBands(t *testing.T) {
	tables := reference.Default()

	tests := []struct {
		name string
		attr common.EnrichedAttributes
		want float64
	}{
		{"very low carbon", common.EnrichedAttributes{CarbonEstimate: 0.5}, 10},
		{"low carbon", common.EnrichedAttributes{CarbonEstimate: 1.0}, 6.5},
		{"medium carbon", common.EnrichedAttributes{CarbonEstimate: 3.9}, 5},
		{"high carbon", common.EnrichedAttributes{CarbonEstimate: 4.0}, 3},
		{"very high carbon", common.EnrichedAttributes{CarbonEstimate: 7.9}, 2},
		{"extreme carbon", common.EnrichedAttributes{CarbonEstimate: 8.0}, 1},
		// 植物性加分只出現在最高區間
		{"vegan bonus in top band", common.EnrichedAttributes{CarbonEstimate: 9, DietaryTags: []string{"vegan"}}, 2},
		{"vegetarian bonus in top band", common.EnrichedAttributes{CarbonEstimate: 9, DietaryTags: []string{"vegetarian"}}, 1.5},
		{"no vegan bonus below top band", common.EnrichedAttributes{CarbonEstimate: 7, DietaryTags: []string{"vegan"}}, 2},
		{"meat penalty floors at one", common.EnrichedAttributes{CarbonEstimate: 9, Ingredients: []string{"ground beef"}}, 1},
		{
			"plant bonus then meat penalty",
			common.EnrichedAttributes{CarbonEstimate: 9, DietaryTags: []string{"vegan"}, Ingredients: []string{"poulet"}},
			1,
		},
		{"meat ignored below top band", common.EnrichedAttributes{CarbonEstimate: 5, Ingredients: []string{"beef"}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanetScore(tt.attr, tables))
		})
	}
}

func TestPleasureScore(t *testing.T) {
	tables := reference.Default()

	tests := []struct {
		name string
		attr common.EnrichedAttributes
		want float64
	}{
		{"plain", common.EnrichedAttributes{NovaScore: 2}, 6},
		{
			"textures fresh vegan",
			common.EnrichedAttributes{SensoryKeywords: []string{"crispy", "tender", "savory"}, NovaScore: 1, DietaryTags: []string{"vegan"}},
			9.9,
		},
		{
			"sensory bonus capped",
			common.EnrichedAttributes{SensoryKeywords: []string{"a", "b", "c", "d", "e"}, NovaScore: 2},
			9,
		},
		{"ultra processed", common.EnrichedAttributes{NovaScore: 4}, 4.5},
		{"one texture word is not enough", common.EnrichedAttributes{SensoryKeywords: []string{"crispy"}, NovaScore: 2}, 6.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PleasureScore(tt.attr, tables), 1e-9)
		})
	}
}

func protein(p string) *string { return &p }

func TestConsumerFit(t *testing.T) {
	tables := reference.Default()

	tests := []struct {
		name    string
		attr    common.EnrichedAttributes
		profile common.UserProfile
		want    float64
	}{
		{
			name:    "allergen veto ignores everything else",
			attr:    common.EnrichedAttributes{Nutriscore: "A", DietaryTags: []string{"vegan"}, Allergens: []string{"gluten"}},
			profile: common.UserProfile{Allergens: []string{" Gluten "}},
			want:    0,
		},
		{
			name:    "vegan dish for vegan",
			attr:    common.EnrichedAttributes{Nutriscore: "B", DietaryTags: []string{"vegan"}},
			profile: common.UserProfile{DietaryRestriction: "vegan", StrictFilter: true},
			want:    10,
		},
		{
			name:    "vegetarian with dairy excluded for strict vegan",
			attr:    common.EnrichedAttributes{Nutriscore: "C", DietaryTags: []string{"vegetarian"}, Allergens: []string{"lactose"}},
			profile: common.UserProfile{DietaryRestriction: "vegan", StrictFilter: true},
			want:    0,
		},
		{
			name:    "vegetarian with dairy penalised for lenient vegan",
			attr:    common.EnrichedAttributes{Nutriscore: "C", DietaryTags: []string{"vegetarian"}, Allergens: []string{"lactose"}},
			profile: common.UserProfile{DietaryRestriction: "vegan"},
			want:    3,
		},
		{
			name:    "vegetarian without animal allergens for vegan",
			attr:    common.EnrichedAttributes{Nutriscore: "D", DietaryTags: []string{"vegetarian"}},
			profile: common.UserProfile{DietaryRestriction: "vegan", StrictFilter: true},
			want:    4.5,
		},
		{
			name:    "meat for lenient vegan",
			attr:    common.EnrichedAttributes{Nutriscore: "E"},
			profile: common.UserProfile{DietaryRestriction: "vegan"},
			want:    0,
		},
		{
			name:    "explicit meat for lenient vegetarian",
			attr:    common.EnrichedAttributes{Nutriscore: "C", PrimaryProtein: protein("beef")},
			profile: common.UserProfile{DietaryRestriction: "vegetarian"},
			want:    2.5,
		},
		{
			name:    "ambiguous protein excluded for strict vegetarian",
			attr:    common.EnrichedAttributes{Nutriscore: "A", PrimaryProtein: protein("snails")},
			profile: common.UserProfile{DietaryRestriction: "vegetarian", StrictFilter: true},
			want:    0,
		},
		{
			name:    "ambiguous protein for lenient vegetarian",
			attr:    common.EnrichedAttributes{Nutriscore: "C", PrimaryProtein: protein("snails")},
			profile: common.UserProfile{DietaryRestriction: "vegetarian"},
			want:    4,
		},
		{
			name:    "gluten-free tagged",
			attr:    common.EnrichedAttributes{Nutriscore: "B", DietaryTags: []string{"gluten-free"}},
			profile: common.UserProfile{DietaryRestriction: "gluten-free", StrictFilter: true},
			want:    10,
		},
		{
			name:    "gluten for strict gluten-free",
			attr:    common.EnrichedAttributes{Nutriscore: "A", Allergens: []string{"gluten"}},
			profile: common.UserProfile{DietaryRestriction: "gluten-free", StrictFilter: true},
			want:    0,
		},
		{
			name:    "gluten-free neutral dish",
			attr:    common.EnrichedAttributes{Nutriscore: "C"},
			profile: common.UserProfile{DietaryRestriction: "gluten-free", StrictFilter: true},
			want:    5,
		},
		{
			name:    "pork ingredient for lenient halal",
			attr:    common.EnrichedAttributes{Nutriscore: "A", Ingredients: []string{"pasta", "bacon"}},
			profile: common.UserProfile{DietaryRestriction: "halal"},
			want:    2.5,
		},
		{
			name:    "pork protein for strict halal",
			attr:    common.EnrichedAttributes{Nutriscore: "A", PrimaryProtein: protein("pork")},
			profile: common.UserProfile{DietaryRestriction: "halal", StrictFilter: true},
			want:    0,
		},
		{
			name:    "halal tagged",
			attr:    common.EnrichedAttributes{Nutriscore: "C", DietaryTags: []string{"halal"}},
			profile: common.UserProfile{DietaryRestriction: "Halal", StrictFilter: true},
			want:    9,
		},
		{
			name: "omnivore plant bonus",
			attr: common.EnrichedAttributes{Nutriscore: "C", DietaryTags: []string{"vegetarian"}},
			want: 6,
		},
		{
			name:    "unknown restriction gets no bonus",
			attr:    common.EnrichedAttributes{Nutriscore: "C", DietaryTags: []string{"vegan"}},
			profile: common.UserProfile{DietaryRestriction: "keto"},
			want:    5,
		},
		{
			name:    "weight loss goal",
			attr:    common.EnrichedAttributes{Nutriscore: "C", DietaryTags: []string{"vegan"}, CarbonEstimate: 2, NovaScore: 1},
			profile: common.UserProfile{Goal: "weight_loss"},
			want:    9.5,
		},
		{
			name:    "muscle goal with plant protein",
			attr:    common.EnrichedAttributes{Nutriscore: "C", PrimaryProtein: protein("tofu")},
			profile: common.UserProfile{Goal: "muscle_gain"},
			want:    7.5,
		},
		{
			name:    "clamped to ten",
			attr:    common.EnrichedAttributes{Nutriscore: "A", DietaryTags: []string{"vegan"}, CarbonEstimate: 1, NovaScore: 1},
			profile: common.UserProfile{DietaryRestriction: "vegan", Goal: "perte de poids"},
			want:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ConsumerFit(tt.attr, tt.profile, tables), 1e-9)
		})
	}
}

func TestRestaurantFit(t *testing.T) {
	tables := reference.Default()

	vegan := common.EnrichedAttributes{DietaryTags: []string{"vegan"}, Allergens: []string{"soy"}, CarbonEstimate: 0.3}
	assert.InDelta(t, 8.5, RestaurantFit(vegan, tables), 1e-9)

	pescatarian := common.EnrichedAttributes{DietaryTags: []string{"pescatarian"}, CarbonEstimate: 3}
	assert.InDelta(t, 7, RestaurantFit(pescatarian, tables), 1e-9)

	heavy := common.EnrichedAttributes{CarbonEstimate: 7}
	assert.InDelta(t, 5, RestaurantFit(heavy, tables), 1e-9)

	manyAllergens := common.EnrichedAttributes{
		Allergens:      []string{"gluten", "lactose", "eggs", "fish", "shellfish", "nuts", "soy", "celery", "mustard", "sesame", "sulphites", "lupin"},
		CarbonEstimate: 9,
	}
	assert.Equal(t, 0.0, RestaurantFit(manyAllergens, tables))
}

func TestComments(t *testing.T) {
	full := common.EnrichedAttributes{
		Allergens:   []string{"gluten", "lactose", "eggs", "soy"},
		Nutriscore:  "A",
		DietaryTags: []string{"vegan", "halal", "local"},
	}
	assert.Equal(t,
		"⚠️ Allergènes: gluten, lactose, eggs • Nutri-Score A • Parfait pour vous • Éco-responsable • Très savoureux • vegan, halal",
		consumerComment(full, 8, 7, 7))
	assert.Equal(t, "Bonne option", consumerComment(common.EnrichedAttributes{Nutriscore: "C"}, 7.99, 6.99, 6.99))

	heavy := common.EnrichedAttributes{DietaryTags: []string{"halal", "local"}, NovaScore: 4}
	assert.Equal(t, "Forte empreinte carbone • Inclusif (2 régimes) • NOVA 4 - Transformé", restaurantComment(heavy, 3))
	assert.Equal(t, "Plat star durable", restaurantComment(common.EnrichedAttributes{NovaScore: 1}, 10))
	assert.Equal(t, "Plat standard", restaurantComment(common.EnrichedAttributes{NovaScore: 2}, 5))
}
