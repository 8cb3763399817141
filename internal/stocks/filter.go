package stocks

import "sort"

// Criteria filters records. Zero values leave the corresponding predicate
// off; Sector "all" means every sector.
type Criteria struct {
	Sector       string
	PriceCeiling float64
	MinAssets    float64
	MaxDebt      float64
	MinRatio     float64
}

// Filter returns the records matching every set predicate, preserving input
// order.
func Filter(in []Record, c Criteria) []Record {
	out := make([]Record, 0, len(in))
	for _, r := range in {
		if c.Sector != "" && c.Sector != "all" && r.Sector != c.Sector {
			continue
		}
		if c.PriceCeiling > 0 && r.Price >= c.PriceCeiling {
			continue
		}
		if c.MinAssets > 0 && r.TotalAssets < c.MinAssets {
			continue
		}
		if c.MaxDebt > 0 && r.TotalDebt > c.MaxDebt {
			continue
		}
		if c.MinRatio > 0 && r.AssetDebtRatio < c.MinRatio {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortKey selects the field SortBy orders on.
type SortKey string

const (
	SortKeyRatio     SortKey = "asset_debt_ratio"
	SortKeyAssets    SortKey = "total_assets"
	SortKeyDebt      SortKey = "lowest_debt"
	SortKeyPrice     SortKey = "price"
	SortKeyMarketCap SortKey = "market_cap"
)

// SortBy returns a sorted copy of the records. Unknown keys fall back to the
// asset/debt ratio. The sort is stable in both directions.
func SortBy(in []Record, key SortKey, descending bool) []Record {
	out := make([]Record, len(in))
	copy(out, in)

	less := lessFunc(key)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b Record) bool {
	switch key {
	case SortKeyAssets:
		return func(a, b Record) bool { return a.TotalAssets < b.TotalAssets }
	case SortKeyDebt:
		return func(a, b Record) bool { return a.TotalDebt < b.TotalDebt }
	case SortKeyPrice:
		return func(a, b Record) bool { return a.Price < b.Price }
	case SortKeyMarketCap:
		return func(a, b Record) bool { return a.MarketCap < b.MarketCap }
	default:
		return func(a, b Record) bool { return a.AssetDebtRatio < b.AssetDebtRatio }
	}
}

// UniqueSectors returns the distinct sector names in alphabetical order.
func UniqueSectors(in []Record) []string {
	seen := make(map[string]struct{}, len(in))
	sectors := make([]string, 0, len(in))
	for _, r := range in {
		if _, ok := seen[r.Sector]; ok {
			continue
		}
		seen[r.Sector] = struct{}{}
		sectors = append(sectors, r.Sector)
	}
	sort.Strings(sectors)
	return sectors
}
