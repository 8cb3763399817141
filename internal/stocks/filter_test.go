package stocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []Record {
	return []Record{
		{Symbol: "A", Sector: "Technology", Price: 45, TotalAssets: 5000, TotalDebt: 1000, AssetDebtRatio: 5.0, MarketCap: 100},
		{Symbol: "B", Sector: "Energy", Price: 80, TotalAssets: 2000, TotalDebt: 500, AssetDebtRatio: 4.0, MarketCap: 400},
		{Symbol: "C", Sector: "Technology", Price: 12, TotalAssets: 800, TotalDebt: 400, AssetDebtRatio: 2.0, MarketCap: 300},
		{Symbol: "D", Sector: "Healthcare", Price: 30, TotalAssets: 3000, TotalDebt: 2500, AssetDebtRatio: 1.2, MarketCap: 200},
	}
}

func symbolsOf(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Symbol
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria keeps everything", Criteria{}, []string{"A", "B", "C", "D"}},
		{"sector all keeps everything", Criteria{Sector: "all"}, []string{"A", "B", "C", "D"}},
		{"by sector", Criteria{Sector: "Technology"}, []string{"A", "C"}},
		{"by price ceiling", Criteria{PriceCeiling: 50}, []string{"A", "C", "D"}},
		{"sector and price combined", Criteria{Sector: "Technology", PriceCeiling: 50}, []string{"A", "C"}},
		{"min assets", Criteria{MinAssets: 2000}, []string{"A", "B", "D"}},
		{"max debt", Criteria{MaxDebt: 500}, []string{"B", "C"}},
		{"min ratio", Criteria{MinRatio: 3.0}, []string{"A", "B"}},
		{"everything filtered out", Criteria{Sector: "Utilities"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleRecords(), tt.criteria)
			assert.Equal(t, tt.want, symbolsOf(got))
		})
	}
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	in := sampleRecords()
	got := Filter(in, Criteria{PriceCeiling: 100})
	assert.Equal(t, symbolsOf(in), symbolsOf(got))
}

func TestSortBy(t *testing.T) {
	tests := []struct {
		name       string
		key        SortKey
		descending bool
		want       []string
	}{
		{"ratio descending", SortKeyRatio, true, []string{"A", "B", "C", "D"}},
		{"ratio ascending", SortKeyRatio, false, []string{"D", "C", "B", "A"}},
		{"assets descending", SortKeyAssets, true, []string{"A", "D", "B", "C"}},
		{"debt ascending", SortKeyDebt, false, []string{"C", "B", "A", "D"}},
		{"price ascending", SortKeyPrice, false, []string{"C", "D", "A", "B"}},
		{"market cap descending", SortKeyMarketCap, true, []string{"B", "C", "D", "A"}},
		{"unknown key falls back to ratio", SortKey("bogus"), true, []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortBy(sampleRecords(), tt.key, tt.descending)
			assert.Equal(t, tt.want, symbolsOf(got))
		})
	}
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	in := sampleRecords()
	_ = SortBy(in, SortKeyPrice, false)
	assert.Equal(t, []string{"A", "B", "C", "D"}, symbolsOf(in))
}

func TestUniqueSectors(t *testing.T) {
	got := UniqueSectors(sampleRecords())
	assert.Equal(t, []string{"Energy", "Healthcare", "Technology"}, got)
}

func TestUniqueSectors_Empty(t *testing.T) {
	assert.Empty(t, UniqueSectors(nil))
}
