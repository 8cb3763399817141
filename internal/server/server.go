// Package server exposes the aggregate result over HTTP: an HTML listing
// with filtering, sorting and pagination, plus a small JSON API for the
// details drill-down.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"stockanalyzer/internal/stocks"
)

//go:embed templates
var templatesFS embed.FS

// AppName is the title shown in the listing header.
const AppName = "AlphaVantage Stock Analyzer"

// Provider yields the aggregate the handlers render. force requests a
// refresh regardless of cache freshness.
type Provider interface {
	Run(ctx context.Context, force bool) (*stocks.Aggregate, error)
}

// CacheInfo reports freshness metadata for the data-age badge.
type CacheInfo interface {
	Fresh() bool
	AgeString() string
}

// Server is the HTTP presentation layer. It only ever reads aggregates; all
// construction happens in the provider.
type Server struct {
	provider Provider
	cache    CacheInfo
	perPage  int
	tmpl     *template.Template
	// Forced refreshes hammer the upstream API, so they pass through a
	// token bucket: one immediately, then at most one per minute.
	refreshLimit *rate.Limiter
	log          zerolog.Logger
}

// New creates a server rendering perPage records per listing page.
func New(provider Provider, cache CacheInfo, perPage int, log zerolog.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money":   FormatMoney,
		"compact": func(n float64) string { return FormatNumber(n, 2) },
		"ratio":   FormatRatio,
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	if perPage < 1 {
		perPage = 10
	}

	return &Server{
		provider:     provider,
		cache:        cache,
		perPage:      perPage,
		tmpl:         tmpl,
		refreshLimit: rate.NewLimiter(rate.Every(time.Minute), 1),
		log:          log.With().Str("component", "server").Logger(),
	}, nil
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stocks", s.handleStocks)
		r.Get("/stocks/{symbol}", s.handleStockDetails)
		r.Get("/sectors", s.handleSectors)
		r.Post("/refresh", s.handleRefresh)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
