package alphavantage

// Listing is one row of the LISTING_STATUS bulk listing.
type Listing struct {
	Symbol string
	Name   string
}

// Overview holds the subset of the OVERVIEW payload the pipeline consumes.
// Numeric fields are pointers so a missing or "None" value stays
// distinguishable from a legitimate zero.
type Overview struct {
	Symbol             string
	Name               string
	Sector             string
	Exchange           string
	MarketCap          *float64
	AnalystTargetPrice *float64
}

// AnnualReport is one annual balance-sheet report. Reports arrive most
// recent first; only the first one is used for metric derivation.
type AnnualReport struct {
	FiscalDateEnding string
	TotalAssets      *float64
	TotalLiabilities *float64
}

// BalanceSheet is the decoded BALANCE_SHEET payload for one symbol.
type BalanceSheet struct {
	Symbol        string
	AnnualReports []AnnualReport
}
