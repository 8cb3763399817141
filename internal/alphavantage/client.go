package alphavantage

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"
)

const (
	requestTimeout = 30 * time.Second
	maxRedirects   = 3

	// instrumentType is the only listing row type kept from LISTING_STATUS.
	instrumentType = "Common Stock"
)

// throttleNotice is embedded in every JSON payload: when the provider's
// request quota is exhausted it answers 200 OK with one of these fields in
// place of the usual data.
type throttleNotice struct {
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

func (n throttleNotice) message() string {
	if n.Note != "" {
		return n.Note
	}
	return n.Information
}

// overviewPayload is the wire form of the OVERVIEW response. Numeric fields
// arrive as strings, with "None" or "-" standing in for absent values.
type overviewPayload struct {
	throttleNotice
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Sector               string `json:"Sector"`
	Exchange             string `json:"Exchange"`
	MarketCapitalization string `json:"MarketCapitalization"`
	AnalystTargetPrice   string `json:"AnalystTargetPrice"`
}

type annualReportPayload struct {
	FiscalDateEnding string `json:"fiscalDateEnding"`
	TotalAssets      string `json:"totalAssets"`
	TotalLiabilities string `json:"totalLiabilities"`
}

type balanceSheetPayload struct {
	throttleNotice
	Symbol        string                `json:"symbol"`
	AnnualReports []annualReportPayload `json:"annualReports"`
}

// globalQuotePayload represents the Alpha Vantage GLOBAL_QUOTE response
type globalQuotePayload struct {
	throttleNotice
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

// Client issues requests against the Alpha Vantage HTTP API. Every failure
// is returned as a typed *APIError; nothing at this layer is process-fatal.
type Client struct {
	apiKey string
	http   *resty.Client
	log    zerolog.Logger
}

// NewClient creates a client for the given API key and base URL.
func NewClient(apiKey, baseURL string, log zerolog.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(requestTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))

	return &Client{
		apiKey: apiKey,
		http:   client,
		log:    log.With().Str("component", "alphavantage").Logger(),
	}
}

// ListSymbols retrieves the bulk LISTING_STATUS table and returns the common
// stocks in it. A malformed header is a soft failure: the error is returned
// alongside zero symbols and the caller decides whether to continue.
func (c *Client) ListSymbols(ctx context.Context) ([]Listing, error) {
	c.log.Info().Msg("fetching stock listing")

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apikey":   c.apiKey,
			"function": "LISTING_STATUS",
		}).
		Get("")

	if err != nil {
		return nil, NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return nil, ClassifyHTTPError(resp.StatusCode())
	}

	listings, err := parseListingCSV(strings.NewReader(resp.String()))
	if err != nil {
		return nil, err
	}

	c.log.Info().Int("symbols", len(listings)).Msg("retrieved stock listing")
	return listings, nil
}

// parseListingCSV extracts symbol and name from the listing table. Columns
// are located by header name, not position; rows without a symbol or of any
// type other than common stock are dropped silently.
func parseListingCSV(r io.Reader) ([]Listing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, NewParseError("empty listing response", err)
	}

	symbolIdx, nameIdx, typeIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "symbol":
			symbolIdx = i
		case "name":
			nameIdx = i
		case "type":
			typeIdx = i
		}
	}
	if symbolIdx < 0 || nameIdx < 0 || typeIdx < 0 {
		return nil, NewParseError("listing response missing symbol/name/type columns", nil)
	}

	var listings []Listing
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue // malformed row, drop it
		}
		if symbolIdx >= len(row) || row[symbolIdx] == "" {
			continue
		}
		if typeIdx >= len(row) || row[typeIdx] != instrumentType {
			continue
		}
		name := ""
		if nameIdx < len(row) {
			name = row[nameIdx]
		}
		listings = append(listings, Listing{Symbol: row[symbolIdx], Name: name})
	}

	return listings, nil
}

// FetchOverview retrieves the company overview for a symbol.
func (c *Client) FetchOverview(ctx context.Context, symbol string) (*Overview, error) {
	c.log.Debug().Str("symbol", symbol).Msg("fetching company overview")

	var payload overviewPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apikey":   c.apiKey,
			"function": "OVERVIEW",
			"symbol":   symbol,
		}).
		SetResult(&payload).
		Get("")

	if err != nil {
		return nil, NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return nil, ClassifyHTTPError(resp.StatusCode())
	}
	if notice := payload.message(); notice != "" {
		return nil, NewThrottledError(notice)
	}

	return &Overview{
		Symbol:             payload.Symbol,
		Name:               payload.Name,
		Sector:             payload.Sector,
		Exchange:           payload.Exchange,
		MarketCap:          parseOptionalFloat(payload.MarketCapitalization),
		AnalystTargetPrice: parseOptionalFloat(payload.AnalystTargetPrice),
	}, nil
}

// FetchBalanceSheet retrieves the annual balance-sheet reports for a symbol.
func (c *Client) FetchBalanceSheet(ctx context.Context, symbol string) (*BalanceSheet, error) {
	c.log.Debug().Str("symbol", symbol).Msg("fetching balance sheet")

	var payload balanceSheetPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apikey":   c.apiKey,
			"function": "BALANCE_SHEET",
			"symbol":   symbol,
		}).
		SetResult(&payload).
		Get("")

	if err != nil {
		return nil, NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return nil, ClassifyHTTPError(resp.StatusCode())
	}
	if notice := payload.message(); notice != "" {
		return nil, NewThrottledError(notice)
	}

	sheet := &BalanceSheet{Symbol: payload.Symbol}
	for _, report := range payload.AnnualReports {
		sheet.AnnualReports = append(sheet.AnnualReports, AnnualReport{
			FiscalDateEnding: report.FiscalDateEnding,
			TotalAssets:      parseOptionalFloat(report.TotalAssets),
			TotalLiabilities: parseOptionalFloat(report.TotalLiabilities),
		})
	}
	return sheet, nil
}

// FetchLatestPrice retrieves the latest quoted price for a symbol.
func (c *Client) FetchLatestPrice(ctx context.Context, symbol string) (float64, error) {
	c.log.Debug().Str("symbol", symbol).Msg("fetching latest price")

	var payload globalQuotePayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apikey":   c.apiKey,
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
		}).
		SetResult(&payload).
		Get("")

	if err != nil {
		return 0, NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return 0, ClassifyHTTPError(resp.StatusCode())
	}
	if notice := payload.message(); notice != "" {
		return 0, NewThrottledError(notice)
	}
	if payload.GlobalQuote.Price == "" {
		return 0, NewValidationError("price not found in response for " + symbol)
	}

	price, err := strconv.ParseFloat(payload.GlobalQuote.Price, 64)
	if err != nil {
		return 0, NewParseError("failed to parse price for "+symbol, err)
	}
	return price, nil
}

// parseOptionalFloat converts a wire value to a float pointer. Empty strings
// and the provider's "None"/"-" placeholders map to absent, as do values
// that fail to parse.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
