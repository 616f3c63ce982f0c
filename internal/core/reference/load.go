package reference

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides YAML 覆寫檔的結構
//
// 數值表以關鍵字合併到內建表；同名分類取代關鍵字，新分類附加在後；
// 清單與替換規則只要有提供就整個取代。
type Overrides struct {
	Prices    []Entry `yaml:"prices"`
	Nutrition []Entry `yaml:"nutrition"`
	Carbon    []Entry `yaml:"carbon"`

	Allergens       []Category `yaml:"allergens"`
	DietaryTags     []Category `yaml:"dietary_tags"`
	ProteinPriority []Category `yaml:"protein_priority"`

	Sensory               []string `yaml:"sensory"`
	TextureWords          []string `yaml:"texture_words"`
	UltraProcessedMarkers []string `yaml:"ultra_processed_markers"`
	ProcessedMarkers      []string `yaml:"processed_markers"`
	FreshMarkers          []string `yaml:"fresh_markers"`
	AnimalProducts        []string `yaml:"animal_products"`
	PlantProteins         []string `yaml:"plant_proteins"`

	SwapRules []SwapRule `yaml:"swap_rules"`
}

// LoadFile 讀取 YAML 覆寫檔並套用到內建資料表
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}
	return Load(data)
}

// Load 解析 YAML 覆寫內容
func Load(data []byte) (*Tables, error) {
	var o Overrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		return nil, fmt.Errorf("parse tables file: %w", err)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o.Apply(Default()), nil
}

func (o *Overrides) validate() error {
	for _, group := range [][]Entry{o.Prices, o.Nutrition, o.Carbon} {
		for _, en := range group {
			if strings.TrimSpace(en.Keyword) == "" {
				return fmt.Errorf("table entry with empty keyword")
			}
			if en.Value < 0 {
				return fmt.Errorf("negative value for %q", en.Keyword)
			}
		}
	}
	for _, en := range o.Nutrition {
		if en.Value < 1 || en.Value > 5 {
			return fmt.Errorf("nutrition grade for %q must be within 1..5", en.Keyword)
		}
	}
	for _, r := range o.SwapRules {
		if len(r.Triggers) == 0 || r.Replacement == "" {
			return fmt.Errorf("swap rule %q needs triggers and a replacement", r.CurrentName)
		}
	}
	return nil
}

// Apply 以 base 為底產生新的資料表
func (o *Overrides) Apply(base *Tables) *Tables {
	t := base.Clone()

	for _, en := range o.Prices {
		t.Prices.Set(strings.ToLower(en.Keyword), en.Value)
	}
	for _, en := range o.Nutrition {
		t.Nutrition.Set(strings.ToLower(en.Keyword), en.Value)
	}
	for _, en := range o.Carbon {
		t.Carbon.Set(strings.ToLower(en.Keyword), en.Value)
	}

	t.Allergens = mergeCategories(t.Allergens, o.Allergens)
	t.DietaryTags = mergeCategories(t.DietaryTags, o.DietaryTags)
	t.ProteinPriority = mergeCategories(t.ProteinPriority, o.ProteinPriority)

	replaceIfSet(&t.Sensory, o.Sensory)
	replaceIfSet(&t.TextureWords, o.TextureWords)
	replaceIfSet(&t.UltraProcessedMarkers, o.UltraProcessedMarkers)
	replaceIfSet(&t.ProcessedMarkers, o.ProcessedMarkers)
	replaceIfSet(&t.FreshMarkers, o.FreshMarkers)
	replaceIfSet(&t.AnimalProducts, o.AnimalProducts)
	replaceIfSet(&t.PlantProteins, o.PlantProteins)

	if len(o.SwapRules) > 0 {
		t.SwapRules = append([]SwapRule(nil), o.SwapRules...)
	}
	return t
}

func mergeCategories(base, over []Category) []Category {
	for _, oc := range over {
		replaced := false
		for i := range base {
			if base[i].Name == oc.Name {
				base[i].Keywords = lowerAll(oc.Keywords)
				replaced = true
				break
			}
		}
		if !replaced {
			base = append(base, Category{Name: oc.Name, Keywords: lowerAll(oc.Keywords)})
		}
	}
	return base
}

func replaceIfSet(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = lowerAll(src)
	}
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
