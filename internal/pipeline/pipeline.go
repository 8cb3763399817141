// Package pipeline orchestrates one data-refresh run: list symbols, fetch
// fundamentals under the pacer, derive metrics, bucket and sort, persist.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"stockanalyzer/internal/alphavantage"
	"stockanalyzer/internal/metrics"
	"stockanalyzer/internal/pacer"
	"stockanalyzer/internal/stocks"
)

// Client is the subset of the Alpha Vantage client the pipeline drives.
type Client interface {
	ListSymbols(ctx context.Context) ([]alphavantage.Listing, error)
	FetchOverview(ctx context.Context, symbol string) (*alphavantage.Overview, error)
	FetchBalanceSheet(ctx context.Context, symbol string) (*alphavantage.BalanceSheet, error)
	FetchLatestPrice(ctx context.Context, symbol string) (float64, error)
}

// Store is the cache the pipeline checks before and writes after a refresh.
type Store interface {
	Fresh() bool
	Load() (*stocks.Aggregate, bool)
	Save(*stocks.Aggregate) error
}

// Pipeline builds the aggregate result. Construction of the aggregate is
// owned exclusively here; everything downstream only reads it.
type Pipeline struct {
	client Client
	pacer  *pacer.Pacer
	store  Store
	limit  int
	log    zerolog.Logger
	now    func() time.Time

	mu sync.Mutex // serializes refreshes so concurrent forced runs cannot race on the artifact
}

// New creates a pipeline processing at most limit symbols per run.
func New(client Client, p *pacer.Pacer, store Store, limit int, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		client: client,
		pacer:  p,
		store:  store,
		limit:  limit,
		log:    log.With().Str("component", "pipeline").Logger(),
		now:    time.Now,
	}
}

// Run returns the cached aggregate when it is still fresh, otherwise performs
// a full refresh. force skips the freshness check. Within the freshness
// window repeated calls issue no API requests at all.
func (p *Pipeline) Run(ctx context.Context, force bool) (*stocks.Aggregate, error) {
	if !force && p.store.Fresh() {
		if agg, ok := p.store.Load(); ok {
			p.log.Debug().Msg("serving cached aggregate")
			return agg, nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another run may have refreshed while we waited for the lock.
	if !force && p.store.Fresh() {
		if agg, ok := p.store.Load(); ok {
			return agg, nil
		}
	}
	return p.refresh(ctx)
}

func (p *Pipeline) refresh(ctx context.Context) (*stocks.Aggregate, error) {
	agg := stocks.NewAggregate()

	if err := p.pacer.RegisterCall(ctx); err != nil {
		return nil, err
	}
	symbols, err := p.client.ListSymbols(ctx)
	if err != nil {
		// A bad listing means a run over zero symbols, not a failed run.
		p.log.Error().Err(err).Msg("listing retrieval failed, refreshing with zero symbols")
	}
	if p.limit > 0 && len(symbols) > p.limit {
		symbols = symbols[:p.limit]
	}

	for i, listing := range symbols {
		symbol := listing.Symbol
		p.log.Info().
			Str("symbol", symbol).
			Str("progress", progress(i, len(symbols))).
			Msg("processing symbol")

		if err := p.pacer.RegisterCall(ctx); err != nil {
			return nil, err
		}
		overview, err := p.client.FetchOverview(ctx, symbol)
		if alphavantage.IsThrottled(err) {
			p.log.Warn().Str("symbol", symbol).Msg("provider rate limit reached, keeping partial results")
			break
		}
		if err != nil {
			p.log.Warn().Err(err).Str("symbol", symbol).Msg("overview fetch failed")
			overview = nil
		}

		if err := p.pacer.RegisterCall(ctx); err != nil {
			return nil, err
		}
		sheet, err := p.client.FetchBalanceSheet(ctx, symbol)
		if alphavantage.IsThrottled(err) {
			p.log.Warn().Str("symbol", symbol).Msg("provider rate limit reached, keeping partial results")
			break
		}
		if err != nil {
			p.log.Warn().Err(err).Str("symbol", symbol).Msg("balance sheet fetch failed")
			sheet = nil
		}

		if overview == nil || sheet == nil ||
			overview.Symbol == "" || overview.Name == "" || len(sheet.AnnualReports) == 0 {
			p.log.Debug().Str("symbol", symbol).Msg("missing required data, skipping")
			continue
		}

		price, err := p.resolvePrice(ctx, symbol, overview)
		if err != nil {
			return nil, err
		}

		ratio, ok := metrics.AssetDebtRatio(sheet)
		if !ok {
			p.log.Debug().Str("symbol", symbol).Msg("asset/debt ratio unresolvable, skipping")
			continue
		}

		agg.Add(buildRecord(overview, sheet, price, ratio))
	}

	agg.SortByRatio()
	agg.GeneratedAt = p.now().UTC()

	if err := p.store.Save(agg); err != nil {
		p.log.Error().Err(err).Msg("failed to persist aggregate")
	}

	p.log.Info().Int("stocks", len(agg.AllStocks)).Msg("refresh complete")
	return agg, nil
}

// resolvePrice prefers the analyst target price already present on the
// overview; only when that is absent or zero does it spend a paced call on
// the quote endpoint. A failed quote leaves the record unpriced rather than
// skipped.
func (p *Pipeline) resolvePrice(ctx context.Context, symbol string, overview *alphavantage.Overview) (float64, error) {
	if overview.AnalystTargetPrice != nil && *overview.AnalystTargetPrice > 0 {
		return *overview.AnalystTargetPrice, nil
	}

	if err := p.pacer.RegisterCall(ctx); err != nil {
		return 0, err
	}
	price, err := p.client.FetchLatestPrice(ctx, symbol)
	if err != nil {
		p.log.Debug().Err(err).Str("symbol", symbol).Msg("quote unavailable")
		return 0, nil
	}
	return price, nil
}

func buildRecord(overview *alphavantage.Overview, sheet *alphavantage.BalanceSheet, price, ratio float64) stocks.Record {
	sector := overview.Sector
	if sector == "" || sector == "None" {
		sector = "Uncategorized"
	}
	exchange := overview.Exchange
	if exchange == "" {
		exchange = "Unknown"
	}
	reportDate := sheet.AnnualReports[0].FiscalDateEnding
	if reportDate == "" {
		reportDate = "Unknown"
	}
	marketCap := 0.0
	if overview.MarketCap != nil {
		marketCap = *overview.MarketCap
	}

	return stocks.Record{
		Symbol:         overview.Symbol,
		Name:           overview.Name,
		Sector:         sector,
		Price:          price,
		TotalAssets:    metrics.TotalAssets(sheet),
		TotalDebt:      metrics.TotalDebt(sheet),
		AssetDebtRatio: ratio,
		MarketCap:      marketCap,
		Exchange:       exchange,
		ReportDate:     reportDate,
	}
}

func progress(i, total int) string {
	return fmt.Sprintf("%d/%d", i+1, total)
}
