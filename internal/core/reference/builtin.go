package reference

func e(keyword string, value float64) Entry {
	return Entry{Keyword: keyword, Value: value}
}

func builtin() *Tables {
	return &Tables{
		Prices:    NewTable(priceEntries...),
		Nutrition: NewTable(nutritionEntries...),
		Carbon:    NewTable(carbonEntries...),

		Allergens:   allergenCategories,
		DietaryTags: dietaryCategories,

		Sensory:      sensoryKeywords,
		TextureWords: []string{"crispy", "croustillant", "tender", "tendre", "fondant"},

		UltraProcessedMarkers: ultraProcessedMarkers,
		ProcessedMarkers: []string{
			"canned", "conserve", "smoked", "fumé", "cured", "saucisson", "jambon", "bacon",
		},
		FreshMarkers: []string{
			"fresh", "frais", "raw", "cru", "organic", "bio", "homemade", "maison", "du jour", "minute",
		},

		AnimalProducts: animalProducts,
		NonMeatAnimalProducts: []string{
			"cheese", "fromage", "cream", "crème", "butter", "beurre",
			"egg", "oeuf", "œuf", "honey", "miel",
		},
		PlantProteins: []string{
			"tofu", "lentil", "lentilles", "chickpea", "pois chiche", "mushroom", "champignon", "falafel",
		},

		ProteinPriority: proteinPriority,

		PlanetMeatKeywords: []string{
			"beef", "boeuf", "chicken", "poulet", "pork", "porc", "lamb", "agneau",
			"duck", "canard", "veal", "veau", "turkey", "dinde", "meat", "viande",
		},
		MeatFishProteins: []string{
			"beef", "boeuf", "chicken", "poulet", "pork", "porc", "lamb", "agneau",
			"duck", "canard", "fish", "poisson", "salmon", "saumon", "shrimp", "crevette",
			"tuna", "kebab", "nuggets", "merguez",
		},
		PorkProteins:         []string{"pork", "porc"},
		PorkIngredients:      []string{"pork", "porc", "bacon", "lardon", "ham", "jambon"},
		VeganUnsafeAllergens: []string{"lactose", "eggs", "fish", "shellfish"},
		LeanProteins: []string{
			"chicken", "poulet", "tofu", "tempeh", "salmon", "saumon", "lentils", "lentilles",
		},
		PlantProteinNames: []string{
			"tofu", "tempeh", "lentils", "lentilles", "chickpeas", "pois chiches",
		},

		SwapRules: []SwapRule{
			{Triggers: []string{"beef", "boeuf", "bœuf", "steak"}, CurrentName: "bœuf", Replacement: "lentilles",
				CO2SavedPerKg: 23.1, CostFrom: 18, CostTo: 3, WeightFraction: 0.2},
			{Triggers: []string{"lamb", "agneau"}, CurrentName: "agneau", Replacement: "champignons",
				CO2SavedPerKg: 37.5, CostFrom: 22, CostTo: 8, WeightFraction: 0.2},
			{Triggers: []string{"chicken", "poulet"}, CurrentName: "poulet", Replacement: "tempeh",
				CO2SavedPerKg: 4.3, CostFrom: 8, CostTo: 6, WeightFraction: 0.2},
			{Triggers: []string{"pork", "porc"}, CurrentName: "porc", Replacement: "tofu",
				CO2SavedPerKg: 5.6, CostFrom: 12, CostTo: 5, WeightFraction: 0.2},
			{Triggers: []string{"shrimp", "crevette"}, CurrentName: "crevettes", Replacement: "tofu",
				CO2SavedPerKg: 24, CostFrom: 30, CostTo: 5, WeightFraction: 0.15},
		},
	}
}

// 批發價 € / kg
var priceEntries = []Entry{
	// 肉類
	e("beef", 18), e("boeuf", 18), e("steak", 22), e("entrecote", 26), e("tartare", 24),
	e("veal", 22), e("veau", 22), e("liver", 15), e("foie", 15), e("foie de veau", 18),
	e("pork", 9), e("porc", 9), e("ribs", 11), e("travers", 11), e("lardon", 10),
	e("duck", 16), e("canard", 16), e("magret", 22), e("confit", 18),
	e("sausage", 9), e("saucisse", 9), e("saucisson", 15), e("andouillette", 16),
	// 速食
	e("chicken", 8.5), e("poulet", 8.5), e("tenders", 10), e("nuggets", 8), e("wings", 7),
	e("kebab", 11), e("viande grecque", 11), e("gyros", 11), e("cordon bleu", 10),
	e("merguez", 9.5), e("minced meat", 10), e("viande hachée", 10),
	// 海鮮
	e("salmon", 17), e("saumon", 17), e("gravlax", 25), e("cod", 15), e("cabillaud", 15),
	e("fish and chips", 12), e("herring", 8), e("hareng", 8), e("shrimp", 18), e("crevette", 18),
	e("gambas", 24), e("tuna", 22), e("thon", 22), e("calamari", 12), e("calamar", 12), e("squid", 12),
	// 麵食與穀物
	e("pasta", 1.5), e("pâtes", 1.5), e("ravioles", 8), e("gnocchi", 4), e("lasagne", 6),
	e("rice", 1.8), e("riz", 1.8), e("risotto", 2.5), e("pizza dough", 2), e("pâte à pizza", 2),
	e("couscous", 1.5), e("semoule", 1.5), e("semolina", 1.5), e("chickpeas", 2.5), e("pois chiches", 2.5),
	e("brick", 5), e("feuille de brick", 5),
	// 蔬菜
	e("potato", 1), e("pomme de terre", 1), e("fries", 1.5), e("frites", 1.5), e("purée", 2),
	e("carrot", 1), e("carotte", 1), e("salad", 3), e("salade", 3), e("roquette", 6),
	e("tomato", 2.5), e("tomate", 2.5), e("cherry tomato", 4), e("eggplant", 2.5), e("aubergine", 2.5),
	e("zucchini", 2.2), e("courgette", 2.2), e("spinach", 3), e("épinard", 3),
	e("mushroom", 5), e("champignon", 5), e("morel", 60), e("morilles", 60), e("avocado", 7), e("avocat", 7),
	// 乳製品
	e("cheese", 11), e("fromage", 11), e("mozzarella", 10), e("burrata", 18), e("parmesan", 18),
	e("pecorino", 16), e("comte", 16), e("comté", 16), e("goat cheese", 14), e("chèvre", 14),
	e("blue cheese", 13), e("bleu", 13), e("gorgonzola", 13), e("cheese sauce", 5), e("sauce fromagère", 5),
	e("cream", 4), e("crème", 4), e("butter", 8), e("beurre", 8),
	// 基本食材
	e("egg", 3.5), e("oeuf", 3.5), e("œuf", 3.5), e("bread", 1.5), e("pain", 1.5), e("bun", 2.5),
	e("tortilla", 3), e("sugar", 1), e("sucre", 1), e("chocolate", 10), e("chocolat", 10),
}

// 簡化 Nutri-Score：A=5 … E=1
var nutritionEntries = []Entry{
	// A
	e("fish", 5), e("poisson", 5), e("cod", 5), e("cabillaud", 5), e("haddock", 5), e("hareng", 5),
	e("vegetables", 5), e("légumes", 5), e("spinach", 5), e("épinard", 5), e("mushroom", 5),
	e("lentils", 5), e("lentilles", 5), e("chickpeas", 5), e("pois chiches", 5),
	e("chicken breast", 5), e("blanc de poulet", 5), e("tofu", 5),
	// B
	e("chicken", 4), e("poulet", 4), e("turkey", 4), e("dinde", 4), e("rice", 4), e("riz", 4),
	e("couscous", 4), e("semoule", 4), e("pasta", 4), e("pâtes", 4), e("ravioles", 4),
	e("egg", 4), e("oeuf", 4), e("shrimp", 4), e("crevette", 4), e("salmon", 4), e("saumon", 4),
	e("escargots", 4), e("snails", 4), e("potato", 4), e("pomme de terre", 4), e("purée", 4),
	// C
	e("beef", 3), e("boeuf", 3), e("steak", 3), e("bavette", 3), e("tartare", 3),
	e("duck", 3), e("canard", 3), e("veal", 3), e("veau", 3), e("liver", 3), e("foie", 3),
	e("pork", 3), e("porc", 3), e("ham", 3), e("jambon", 3), e("mozzarella", 3),
	e("goat cheese", 3), e("chèvre", 3), e("bread", 3), e("pain", 3), e("bun", 3), e("tortilla", 3),
	// D
	e("cheese", 2), e("fromage", 2), e("comté", 2), e("parmesan", 2), e("bleu", 2),
	e("merguez", 2), e("sausage", 2), e("saucisse", 2), e("kebab", 2), e("gyros", 2),
	e("lamb", 2), e("agneau", 2), e("cream", 2), e("crème", 2), e("butter", 2), e("beurre", 2),
	e("fries", 2), e("frites", 2), e("potatoes", 2), e("duck confit", 2), e("confit", 2),
	e("sauce", 2), e("pesto", 2),
	// E
	e("fried", 1), e("frit", 1), e("nuggets", 1), e("tenders", 1), e("cordon bleu", 1),
	e("cheese sauce", 1), e("sauce fromagère", 1), e("mayonnaise", 1), e("ketchup", 1), e("bbq", 1),
	e("salami", 1), e("chorizo", 1), e("lardon", 1), e("bacon", 1), e("foie gras", 1),
	e("cake", 1), e("gâteau", 1), e("chocolate", 1), e("chocolat", 1),
}

// Agribalyse 3.1，kg CO2e / kg
var carbonEntries = []Entry{
	// 紅肉
	e("snails", 2), e("escargot", 2), e("escargots", 2),
	e("beef", 28), e("boeuf", 28), e("steak", 28), e("burger", 28),
	e("lamb", 34), e("agneau", 34), e("merguez", 26), e("veal", 16), e("veau", 16), e("liver", 16),
	// 白肉與豬肉
	e("pork", 6), e("porc", 6), e("lardon", 7), e("ham", 5.5), e("chicken", 4), e("poulet", 4),
	e("nuggets", 5), e("duck", 8), e("canard", 8), e("magret", 8.5),
	// 魚類
	e("shrimp", 22), e("crevette", 22), e("salmon", 7), e("saumon", 7), e("white fish", 5),
	e("poisson blanc", 5), e("cod", 6), e("hareng", 4), e("tuna", 5.5), e("thon", 5.5),
	// 乳製品
	e("butter", 10), e("beurre", 10), e("cheese", 8), e("fromage", 8), e("comté", 9), e("parmesan", 9),
	e("mozzarella", 6), e("burrata", 6.5), e("cream", 4.5), e("crème", 4.5), e("sauce fromagère", 5.5),
	// 植物與澱粉
	e("rice", 2), e("riz", 2), e("pasta", 0.5), e("pâtes", 0.5), e("ravioles", 2.5),
	e("couscous", 0.6), e("semoule", 0.6), e("bread", 0.6), e("pain", 0.6), e("tortilla", 0.8),
	e("potato", 0.3), e("pomme de terre", 0.3), e("fries", 0.8), e("vegetables", 0.4), e("légumes", 0.4),
	e("salad", 0.5), e("tomato", 0.6), e("tomate", 0.6), e("avocado", 1.5), e("avocat", 1.5),
	e("chickpeas", 0.5), e("pois chiches", 0.5), e("lentils", 0.6), e("lentilles", 0.6),
	e("mushroom", 0.5), e("champignon", 0.5),
	// 甜點
	e("chocolate", 19), e("chocolat", 19), e("sugar", 0.6), e("sucre", 0.6), e("fruit", 0.5),
}

var allergenCategories = []Category{
	{Name: "gluten", Keywords: []string{
		"wheat", "blé", "bread", "pain", "pasta", "pâtes", "bun", "pizza", "flour", "farine", "soy sauce", "sauce soja",
	}},
	{Name: "lactose", Keywords: []string{
		"milk", "lait", "cheese", "fromage", "cream", "crème", "butter", "beurre", "yogurt", "yaourt", "mozzarella", "parmesan",
	}},
	{Name: "eggs", Keywords: []string{"egg", "oeuf", "œuf", "mayonnaise", "mayo"}},
	{Name: "fish", Keywords: []string{
		"fish", "poisson", "salmon", "saumon", "tuna", "thon", "cod", "cabillaud", "herring", "hareng", "anchovy", "anchois",
	}},
	{Name: "shellfish", Keywords: []string{
		"shrimp", "crevette", "crab", "crabe", "lobster", "homard", "mussels", "moules", "oyster", "huître", "scallops", "st jacques",
	}},
	{Name: "nuts", Keywords: []string{
		"nut", "noix", "almond", "amande", "walnut", "pecan", "cashew", "cajou", "hazelnut", "noisette", "peanut", "cacahuète", "arachide",
	}},
	{Name: "soy", Keywords: []string{"soy", "soja", "tofu", "tempeh", "edamame"}},
	{Name: "sesame", Keywords: []string{"sesame", "sésame", "tahini"}},
	{Name: "celery", Keywords: []string{"celery", "céleri"}},
	{Name: "mustard", Keywords: []string{"mustard", "moutarde"}},
	{Name: "sulfites", Keywords: []string{"wine", "vin", "dried fruit", "fruit sec"}},
	{Name: "lupin", Keywords: []string{"lupin"}},
	{Name: "mollusks", Keywords: []string{"snail", "escargot", "squid", "calamar", "octopus", "poulpe"}},
}

var dietaryCategories = []Category{
	{Name: "vegan", Keywords: []string{"vegan", "végétal", "100% végétal", "plant-based"}},
	{Name: "vegetarian", Keywords: []string{"vegetarian", "végétarien", "veggie"}},
	{Name: "gluten-free", Keywords: []string{"gluten-free", "sans gluten", "gf", "corn tortilla"}},
	{Name: "dairy-free", Keywords: []string{"dairy-free", "sans lactose", "sans produits laitiers"}},
	{Name: "halal", Keywords: []string{"halal", "viande certifiée", "sans porc"}},
	{Name: "kosher", Keywords: []string{"kosher", "casher"}},
	{Name: "organic", Keywords: []string{"organic", "bio", "biologique", "nature"}},
	{Name: "local", Keywords: []string{"local", "du terroir", "de saison", "aveyron", "normandie", "bretagne"}},
}

var sensoryKeywords = []string{
	"crispy", "croustillant", "crunchy", "pané", "juicy", "juteux", "tendre", "tender", "moelleux",
	"creamy", "crémeux", "onctueux", "fondant", "melting", "coulant", "umami", "savory", "savoureux",
	"gourmand", "spicy", "épicé", "piquant", "relevé", "harissa", "rich", "riche", "beurré",
	"aromatic", "aromatique", "flavorful", "parfumé", "sweet", "doux", "sucré-salé", "grilled", "grillé",
	"roasted", "rôti", "braisé", "mijoté", "snacké", "caramélisé", "fumé", "smoked", "confit",
}

var ultraProcessedMarkers = []string{
	"nugget", "tenders", "cordon bleu", "surimi", "sauce fromagère", "cheese sauce", "fromage fondu",
	"pain industriel", "galette de blé", "reconstituted", "reconstitué", "vsm", "instant",
	"ready-to-eat", "prêt à manger", "artificial", "artificiel", "arôme", "emulsifier", "émulsifiant",
	"stabilisant", "modified starch", "amidon modifié", "high fructose", "sirop de glucose",
	"hydrogenated", "hydrogéné", "huile de palme",
}

var animalProducts = []string{
	"beef", "boeuf", "bœuf", "steak", "bavette", "tartare", "chicken", "poulet", "volaille",
	"nuggets", "tenders", "ham", "pork", "porc", "bacon", "lardon", "jambon", "saucisse", "merguez",
	"duck", "canard", "magret", "foie gras", "lamb", "agneau", "kebab", "viande",
	"fish", "poisson", "salmon", "saumon", "tuna", "thon", "cod", "cabillaud", "shrimp", "crevette",
	"mussels", "moules", "scallops", "saint-jacques", "escargot", "snail", "escargots", "snails",
	"cheese", "fromage", "cream", "crème", "butter", "beurre", "egg", "oeuf", "œuf", "honey", "miel",
}

var proteinPriority = []Category{
	{Name: "lamb", Keywords: []string{"lamb", "agneau", "gigot", "merguez", "kebab", "viande grecque"}},
	{Name: "beef", Keywords: []string{"beef", "boeuf", "bœuf", "steak", "entrecote", "bavette", "tartare", "burger"}},
	{Name: "duck", Keywords: []string{"duck", "canard", "magret", "confit", "foie gras"}},
	{Name: "snails", Keywords: []string{"snail", "escargot", "escargots"}},
	{Name: "veal", Keywords: []string{"veal", "veau", "ris de veau", "foie de veau"}},
	{Name: "pork", Keywords: []string{"pork", "porc", "bacon", "lardon", "jambon", "ribs", "travers", "saucisse", "andouillette"}},
	{Name: "chicken", Keywords: []string{"chicken", "poulet", "volaille", "wings", "dinde"}},
	{Name: "nuggets", Keywords: []string{"nuggets", "tenders", "cordon bleu"}},
	{Name: "salmon", Keywords: []string{"salmon", "saumon", "gravlax"}},
	{Name: "tuna", Keywords: []string{"tuna", "thon"}},
	{Name: "scallops", Keywords: []string{"scallops", "saint-jacques", "st jacques"}},
	{Name: "shrimp", Keywords: []string{"shrimp", "crevette", "gambas"}},
	{Name: "fish", Keywords: []string{"fish", "poisson", "cod", "cabillaud", "haddock", "merlan", "lieu", "bar", "maigre", "dorade"}},
	{Name: "mussels", Keywords: []string{"mussels", "moules"}},
	{Name: "egg", Keywords: []string{"egg", "oeuf", "œuf", "omelette"}},
	{Name: "cheese", Keywords: []string{"burrata", "mozzarella", "camembert", "halloumi", "paneer"}},
	{Name: "lentils", Keywords: []string{"lentil", "lentilles"}},
	{Name: "chickpeas", Keywords: []string{"chickpea", "pois chiche", "houmous", "falafel"}},
	{Name: "tofu", Keywords: []string{"tofu"}},
}
