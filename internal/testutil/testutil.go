package testutil

import (
	"context"

	"stockanalyzer/internal/alphavantage"
)

// MockClient is a scripted pipeline.Client for tests. Responses are keyed by
// symbol and call counts are recorded so tests can assert pacing and
// short-circuit behavior.
type MockClient struct {
	Listings []alphavantage.Listing
	ListErr  error

	Overviews    map[string]*alphavantage.Overview
	OverviewErrs map[string]error

	Sheets    map[string]*alphavantage.BalanceSheet
	SheetErrs map[string]error

	Prices    map[string]float64
	PriceErrs map[string]error

	ListCalls     int
	OverviewCalls int
	SheetCalls    int
	PriceCalls    int
}

// ListSymbols implements pipeline.Client
func (m *MockClient) ListSymbols(ctx context.Context) ([]alphavantage.Listing, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Listings, nil
}

// FetchOverview implements pipeline.Client
func (m *MockClient) FetchOverview(ctx context.Context, symbol string) (*alphavantage.Overview, error) {
	m.OverviewCalls++
	if err, ok := m.OverviewErrs[symbol]; ok {
		return nil, err
	}
	return m.Overviews[symbol], nil
}

// FetchBalanceSheet implements pipeline.Client
func (m *MockClient) FetchBalanceSheet(ctx context.Context, symbol string) (*alphavantage.BalanceSheet, error) {
	m.SheetCalls++
	if err, ok := m.SheetErrs[symbol]; ok {
		return nil, err
	}
	return m.Sheets[symbol], nil
}

// FetchLatestPrice implements pipeline.Client
func (m *MockClient) FetchLatestPrice(ctx context.Context, symbol string) (float64, error) {
	m.PriceCalls++
	if err, ok := m.PriceErrs[symbol]; ok {
		return 0, err
	}
	return m.Prices[symbol], nil
}

// TotalCalls returns how many API calls the mock has served.
func (m *MockClient) TotalCalls() int {
	return m.ListCalls + m.OverviewCalls + m.SheetCalls + m.PriceCalls
}

// FloatPtr returns a pointer to v, for building optional payload fields.
func FloatPtr(v float64) *float64 {
	return &v
}

// Sheet builds a one-report balance sheet with the given assets and
// liabilities. Pass nil for an absent field.
func Sheet(symbol, date string, assets, liabilities *float64) *alphavantage.BalanceSheet {
	return &alphavantage.BalanceSheet{
		Symbol: symbol,
		AnnualReports: []alphavantage.AnnualReport{
			{FiscalDateEnding: date, TotalAssets: assets, TotalLiabilities: liabilities},
		},
	}
}
