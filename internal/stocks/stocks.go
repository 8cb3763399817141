// Package stocks defines the derived stock record, the aggregate result of
// a pipeline run, and the pure filter/sort helpers the presentation layer
// consumes.
package stocks

import (
	"sort"
	"time"
)

// Record is the canonical derived view of one company. A record only exists
// when its asset/debt ratio resolved; there is no "ratio unknown" state.
type Record struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Sector         string  `json:"sector"`
	Price          float64 `json:"price"`
	TotalAssets    float64 `json:"totalAssets"`
	TotalDebt      float64 `json:"totalDebt"`
	AssetDebtRatio float64 `json:"assetDebtRatio"`
	MarketCap      float64 `json:"marketCap"`
	Exchange       string  `json:"exchange"`
	ReportDate     string  `json:"reportDate"`
}

// Aggregate is the result of one full pipeline run. It is built wholesale
// and replaced wholesale on the next refresh; consumers only read it.
type Aggregate struct {
	AllStocks   []Record            `json:"allStocks"`
	BySector    map[string][]Record `json:"stocksBySector"`
	ByPrice     map[string][]Record `json:"stocksByPrice"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// Bracket is a cumulative price ceiling: a stock belongs to every bracket
// whose ceiling exceeds its price, plus the catch-all bracket.
type Bracket struct {
	Key     string
	Ceiling float64
	Label   string
}

// BracketAll is the key of the catch-all bracket holding every stock.
const BracketAll = "9999"

// Brackets are the fixed price brackets, cheapest ceiling first.
var Brackets = []Bracket{
	{Key: "10", Ceiling: 10, Label: "Under $10"},
	{Key: "20", Ceiling: 20, Label: "Under $20"},
	{Key: "50", Ceiling: 50, Label: "Under $50"},
	{Key: "100", Ceiling: 100, Label: "Under $100"},
	{Key: BracketAll, Label: "All Prices"},
}

// NewAggregate creates an empty aggregate with every price bracket present.
func NewAggregate() *Aggregate {
	byPrice := make(map[string][]Record, len(Brackets))
	for _, b := range Brackets {
		byPrice[b.Key] = []Record{}
	}
	return &Aggregate{
		AllStocks: []Record{},
		BySector:  map[string][]Record{},
		ByPrice:   byPrice,
	}
}

// Add appends the record to the overall list, its sector bucket (created on
// first use), the catch-all bracket and every bounded bracket whose ceiling
// exceeds the price. Unpriced records only reach the catch-all bracket.
func (a *Aggregate) Add(r Record) {
	a.AllStocks = append(a.AllStocks, r)
	a.BySector[r.Sector] = append(a.BySector[r.Sector], r)
	a.ByPrice[BracketAll] = append(a.ByPrice[BracketAll], r)

	if r.Price <= 0 {
		return
	}
	for _, b := range Brackets {
		if b.Key == BracketAll {
			continue
		}
		if r.Price < b.Ceiling {
			a.ByPrice[b.Key] = append(a.ByPrice[b.Key], r)
		}
	}
}

// SortByRatio re-sorts the overall list and every bucket independently,
// descending by asset/debt ratio. Stable, so equal ratios keep insertion
// order and repeated runs stay deterministic.
func (a *Aggregate) SortByRatio() {
	sortRatioDesc(a.AllStocks)
	for _, records := range a.BySector {
		sortRatioDesc(records)
	}
	for _, records := range a.ByPrice {
		sortRatioDesc(records)
	}
}

func sortRatioDesc(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AssetDebtRatio > records[j].AssetDebtRatio
	})
}
