// Package metrics derives financial metrics from balance-sheet data.
// Everything here is pure: no I/O, no clock, no logging.
package metrics

import (
	"math"

	"stockanalyzer/internal/alphavantage"
)

// RatioMax is the sentinel ratio for a company with assets and zero
// liabilities. Division by zero never surfaces as an error, Inf or NaN.
const RatioMax = math.MaxFloat64

// AssetDebtRatio computes totalAssets / totalLiabilities from the most
// recent annual report. The second return value is false when no report
// exists or the latest report lacks either field; callers must exclude the
// stock entirely in that case rather than substitute a placeholder.
func AssetDebtRatio(sheet *alphavantage.BalanceSheet) (float64, bool) {
	report, ok := latestReport(sheet)
	if !ok {
		return 0, false
	}
	if report.TotalAssets == nil || report.TotalLiabilities == nil {
		return 0, false
	}

	assets := *report.TotalAssets
	liabilities := *report.TotalLiabilities

	if liabilities == 0 {
		if assets > 0 {
			return RatioMax, true
		}
		return 0, true
	}
	return assets / liabilities, true
}

// TotalAssets returns the most recent total assets, defaulting to 0 when
// unavailable. Used for display only, never for inclusion decisions.
func TotalAssets(sheet *alphavantage.BalanceSheet) float64 {
	report, ok := latestReport(sheet)
	if !ok || report.TotalAssets == nil {
		return 0
	}
	return *report.TotalAssets
}

// TotalDebt returns the most recent total liabilities, defaulting to 0 when
// unavailable.
func TotalDebt(sheet *alphavantage.BalanceSheet) float64 {
	report, ok := latestReport(sheet)
	if !ok || report.TotalLiabilities == nil {
		return 0
	}
	return *report.TotalLiabilities
}

func latestReport(sheet *alphavantage.BalanceSheet) (alphavantage.AnnualReport, bool) {
	if sheet == nil || len(sheet.AnnualReports) == 0 {
		return alphavantage.AnnualReport{}, false
	}
	return sheet.AnnualReports[0], true
}
