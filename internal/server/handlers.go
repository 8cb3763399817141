package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"stockanalyzer/internal/stocks"
)

// listingQuery is the decoded state of the listing controls.
type listingQuery struct {
	Page    int
	Sector  string
	Bracket string
	Sort    stocks.SortKey
	Order   string
	Refresh bool
}

func parseListingQuery(r *http.Request) listingQuery {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	sector := q.Get("sector")
	if sector == "" {
		sector = "all"
	}
	bracket := q.Get("price")
	if bracket == "" {
		bracket = stocks.BracketAll
	}
	sortKey := stocks.SortKey(q.Get("sort"))
	if sortKey == "" {
		sortKey = stocks.SortKeyRatio
	}
	order := q.Get("order")
	if order != "asc" {
		order = "desc"
	}

	return listingQuery{
		Page:    page,
		Sector:  sector,
		Bracket: bracket,
		Sort:    sortKey,
		Order:   order,
		Refresh: q.Get("refresh") == "1",
	}
}

// selectStocks applies the listing controls: price bracket first (the
// aggregate already has the cumulative buckets built), then sector filter,
// then on-demand sort.
func selectStocks(agg *stocks.Aggregate, q listingQuery) []stocks.Record {
	base := agg.AllStocks
	if q.Bracket != stocks.BracketAll {
		if bucket, ok := agg.ByPrice[q.Bracket]; ok {
			base = bucket
		}
	}
	filtered := stocks.Filter(base, stocks.Criteria{Sector: q.Sector})
	return stocks.SortBy(filtered, q.Sort, q.Order == "desc")
}

type indexData struct {
	AppName    string
	Stocks     []stocks.Record
	Sectors    []string
	Brackets   []stocks.Bracket
	Query      listingQuery
	Pagination Pagination
	Total      int
	CacheAge   string
	CacheFresh bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := parseListingQuery(r)

	force := q.Refresh && s.refreshLimit.Allow()
	agg, err := s.provider.Run(r.Context(), force)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to produce aggregate")
		http.Error(w, "failed to load stock data", http.StatusInternalServerError)
		return
	}

	records := selectStocks(agg, q)
	pg := paginate(len(records), q.Page, s.perPage)

	data := indexData{
		AppName:    AppName,
		Stocks:     records[pg.Offset:pg.End],
		Sectors:    stocks.UniqueSectors(agg.AllStocks),
		Brackets:   stocks.Brackets,
		Query:      q,
		Pagination: pg,
		Total:      len(records),
		CacheAge:   s.cache.AgeString(),
		CacheFresh: s.cache.Fresh(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		s.log.Error().Err(err).Msg("template render failed")
	}
}

type stocksResponse struct {
	Stocks     []stocks.Record `json:"stocks"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	q := parseListingQuery(r)

	agg, err := s.provider.Run(r.Context(), false)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load stock data")
		return
	}

	records := selectStocks(agg, q)

	// The JSON API additionally exposes the numeric criteria.
	criteria := stocks.Criteria{
		MinAssets: queryFloat(r, "min_assets"),
		MaxDebt:   queryFloat(r, "max_debt"),
		MinRatio:  queryFloat(r, "min_ratio"),
	}
	records = stocks.Filter(records, criteria)

	pg := paginate(len(records), q.Page, s.perPage)
	s.writeJSON(w, http.StatusOK, stocksResponse{
		Stocks:     records[pg.Offset:pg.End],
		Total:      len(records),
		Page:       pg.Page,
		TotalPages: pg.TotalPages,
	})
}

func (s *Server) handleStockDetails(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	agg, err := s.provider.Run(r.Context(), false)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load stock data")
		return
	}

	for _, record := range agg.AllStocks {
		if strings.EqualFold(record.Symbol, symbol) {
			s.writeJSON(w, http.StatusOK, record)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "unknown symbol: "+symbol)
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	agg, err := s.provider.Run(r.Context(), false)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load stock data")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{
		"sectors": stocks.UniqueSectors(agg.AllStocks),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.refreshLimit.Allow() {
		s.writeError(w, http.StatusTooManyRequests, "refresh rate limit exceeded, try again later")
		return
	}

	agg, err := s.provider.Run(r.Context(), true)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"stocks":      len(agg.AllStocks),
		"generatedAt": agg.GeneratedAt,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func queryFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil {
		return 0
	}
	return v
}
