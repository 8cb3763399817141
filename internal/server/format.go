package server

import (
	"strconv"

	"stockanalyzer/internal/metrics"
)

// FormatNumber renders large values with K/M/B/T suffixes for the compact
// columns of the listing table.
func FormatNumber(n float64, decimals int) string {
	if n == 0 {
		return "0"
	}
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', decimals, 64) }
	switch {
	case n >= 1e12:
		return sign + f(n/1e12) + "T"
	case n >= 1e9:
		return sign + f(n/1e9) + "B"
	case n >= 1e6:
		return sign + f(n/1e6) + "M"
	case n >= 1e3:
		return sign + f(n/1e3) + "K"
	default:
		return sign + f(n)
	}
}

// FormatMoney renders a plain two-decimal dollar amount.
func FormatMoney(n float64) string {
	return "$" + strconv.FormatFloat(n, 'f', 2, 64)
}

// FormatRatio renders the ranking metric. The zero-liabilities sentinel
// shows as infinity rather than an unreadable float.
func FormatRatio(r float64) string {
	if r >= metrics.RatioMax {
		return "∞"
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}
