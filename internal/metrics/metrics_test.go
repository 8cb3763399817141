package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockanalyzer/internal/alphavantage"
	"stockanalyzer/internal/testutil"
)

func TestAssetDebtRatio(t *testing.T) {
	tests := []struct {
		name      string
		sheet     *alphavantage.BalanceSheet
		wantRatio float64
		wantOK    bool
	}{
		{
			name:      "normal ratio",
			sheet:     testutil.Sheet("AAPL", "2023-09-30", testutil.FloatPtr(300), testutil.FloatPtr(100)),
			wantRatio: 3.0,
			wantOK:    true,
		},
		{
			name:      "zero liabilities with assets resolves to sentinel",
			sheet:     testutil.Sheet("X", "2023-12-31", testutil.FloatPtr(100), testutil.FloatPtr(0)),
			wantRatio: RatioMax,
			wantOK:    true,
		},
		{
			name:      "zero liabilities and zero assets resolves to zero",
			sheet:     testutil.Sheet("X", "2023-12-31", testutil.FloatPtr(0), testutil.FloatPtr(0)),
			wantRatio: 0,
			wantOK:    true,
		},
		{
			name:   "missing assets",
			sheet:  testutil.Sheet("X", "2023-12-31", nil, testutil.FloatPtr(100)),
			wantOK: false,
		},
		{
			name:   "missing liabilities",
			sheet:  testutil.Sheet("X", "2023-12-31", testutil.FloatPtr(100), nil),
			wantOK: false,
		},
		{
			name:   "no annual reports",
			sheet:  &alphavantage.BalanceSheet{Symbol: "X"},
			wantOK: false,
		},
		{
			name:   "nil sheet",
			sheet:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, ok := AssetDebtRatio(tt.sheet)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRatio, ratio)
			}
		})
	}
}

func TestAssetDebtRatio_UsesMostRecentReport(t *testing.T) {
	sheet := &alphavantage.BalanceSheet{
		Symbol: "AAPL",
		AnnualReports: []alphavantage.AnnualReport{
			{FiscalDateEnding: "2023-09-30", TotalAssets: testutil.FloatPtr(200), TotalLiabilities: testutil.FloatPtr(100)},
			{FiscalDateEnding: "2022-09-24", TotalAssets: testutil.FloatPtr(900), TotalLiabilities: testutil.FloatPtr(100)},
		},
	}

	ratio, ok := AssetDebtRatio(sheet)
	assert.True(t, ok)
	assert.Equal(t, 2.0, ratio)
}

func TestTotalAssets(t *testing.T) {
	assert.Equal(t, 300.0, TotalAssets(testutil.Sheet("X", "2023-12-31", testutil.FloatPtr(300), nil)))
	assert.Equal(t, 0.0, TotalAssets(testutil.Sheet("X", "2023-12-31", nil, nil)))
	assert.Equal(t, 0.0, TotalAssets(&alphavantage.BalanceSheet{}))
	assert.Equal(t, 0.0, TotalAssets(nil))
}

func TestTotalDebt(t *testing.T) {
	assert.Equal(t, 100.0, TotalDebt(testutil.Sheet("X", "2023-12-31", nil, testutil.FloatPtr(100))))
	assert.Equal(t, 0.0, TotalDebt(testutil.Sheet("X", "2023-12-31", nil, nil)))
	assert.Equal(t, 0.0, TotalDebt(nil))
}
