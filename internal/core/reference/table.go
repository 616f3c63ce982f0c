// Package reference holds the static food knowledge used for dish enrichment:
// per-ingredient price, nutrition grade and carbon intensity, plus the keyword
// vocabularies for allergens, dietary labels, sensory terms and processing level.
package reference

import "strings"

// Entry 一筆關鍵字與數值
type Entry struct {
	Keyword string  `yaml:"keyword"`
	Value   float64 `yaml:"value"`
}

// Table 保留插入順序的關鍵字表
type Table struct {
	entries []Entry
	index   map[string]float64
}

// NewTable 依序建立，重複的關鍵字以後者為準但保留第一次出現的位置
func NewTable(entries ...Entry) *Table {
	t := &Table{index: make(map[string]float64, len(entries))}
	for _, e := range entries {
		t.Set(e.Keyword, e.Value)
	}
	return t
}

// Set 新增或覆寫
func (t *Table) Set(keyword string, value float64) {
	if _, ok := t.index[keyword]; ok {
		for i := range t.entries {
			if t.entries[i].Keyword == keyword {
				t.entries[i].Value = value
			}
		}
	} else {
		t.entries = append(t.entries, Entry{Keyword: keyword, Value: value})
	}
	t.index[keyword] = value
}

// Lookup 精確查詢
func (t *Table) Lookup(keyword string) (float64, bool) {
	v, ok := t.index[keyword]
	return v, ok
}

// ValueOr 查不到時回傳 def
func (t *Table) ValueOr(keyword string, def float64) float64 {
	if v, ok := t.index[keyword]; ok {
		return v
	}
	return def
}

// Entries 依插入順序回傳所有項目
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len 項目數
func (t *Table) Len() int {
	return len(t.entries)
}

// MatchIn 依表格順序回傳在 text 中以子字串出現的項目
func (t *Table) MatchIn(text string) []Entry {
	var found []Entry
	for _, e := range t.entries {
		if strings.Contains(text, e.Keyword) {
			found = append(found, e)
		}
	}
	return found
}

// Category 具名的關鍵字集合
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// MatchesText 任一關鍵字為 text 的子字串
func (c Category) MatchesText(text string) bool {
	return ContainsAny(text, c.Keywords)
}

// MatchesAny 任一關鍵字與 items 中某項完全相同
func (c Category) MatchesAny(items []string) bool {
	for _, kw := range c.Keywords {
		for _, it := range items {
			if kw == it {
				return true
			}
		}
	}
	return false
}

// ContainsAny text 是否包含任一關鍵字
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// MatchAll 回傳在 text 中出現的關鍵字，保持原順序
func MatchAll(text string, keywords []string) []string {
	found := make([]string, 0)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// In 精確成員判斷
func In(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SwapRule 高碳食材的替換規則
type SwapRule struct {
	Triggers       []string `yaml:"triggers"`
	CurrentName    string   `yaml:"current"`
	Replacement    string   `yaml:"replacement"`
	CO2SavedPerKg  float64  `yaml:"co2_saved"`
	CostFrom       float64  `yaml:"cost_from"`
	CostTo         float64  `yaml:"cost_to"`
	WeightFraction float64  `yaml:"weight"`
}

// CO2Saved 每份節省的 kg CO2e
func (r SwapRule) CO2Saved() float64 {
	return r.CO2SavedPerKg * r.WeightFraction
}

// CostSaved 每份節省的成本（歐元）
func (r SwapRule) CostSaved() float64 {
	return (r.CostFrom - r.CostTo) * r.WeightFraction
}

// Matches text 是否觸發此規則
func (r SwapRule) Matches(text string) bool {
	return ContainsAny(text, r.Triggers)
}
