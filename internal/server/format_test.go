package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockanalyzer/internal/metrics"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		n        float64
		decimals int
		want     string
	}{
		{"zero", 0, 2, "0"},
		{"small value untouched", 950, 2, "950.00"},
		{"thousands", 1500, 2, "1.50K"},
		{"millions", 2_500_000, 2, "2.50M"},
		{"billions", 352_000_000_000, 2, "352.00B"},
		{"trillions", 2_800_000_000_000, 2, "2.80T"},
		{"no decimals", 1500, 0, "2K"},
		{"negative", -1_200_000, 1, "-1.2M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n, tt.decimals))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$178.23", FormatMoney(178.23))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$1000.50", FormatMoney(1000.5))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "1.21", FormatRatio(1.21))
	assert.Equal(t, "0.00", FormatRatio(0))
	assert.Equal(t, "∞", FormatRatio(metrics.RatioMax))
}
