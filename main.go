package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"stockanalyzer/internal/alphavantage"
	"stockanalyzer/internal/cache"
	"stockanalyzer/internal/config"
	"stockanalyzer/internal/logger"
	"stockanalyzer/internal/pacer"
	"stockanalyzer/internal/pipeline"
	"stockanalyzer/internal/server"
)

func main() {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
	log.Info().Msg("starting stock analyzer")

	client := alphavantage.NewClient(cfg.AlphavantageAPIKey, cfg.AlphavantageBaseURL, log)
	pace := pacer.New(cfg.MaxRequestsPerMinute, cfg.RequestPause, log)
	store := cache.New(cfg.CacheFile, cfg.CacheExpiry, log)
	pipe := pipeline.New(client, pace, store, cfg.StockLimit, log)

	srv, err := server.New(pipe, store, cfg.RecordsPerPage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sched *cron.Cron
	if cfg.RefreshSchedule != "" {
		sched = cron.New()
		_, err := sched.AddFunc(cfg.RefreshSchedule, func() {
			log.Info().Msg("scheduled refresh starting")
			if _, err := pipe.Run(ctx, true); err != nil {
				log.Error().Err(err).Msg("scheduled refresh failed")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("invalid refresh schedule")
		}
		sched.Start()
		log.Info().Str("schedule", cfg.RefreshSchedule).Msg("background refresh enabled")
	}

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("received interrupt signal, shutting down")

	cancel()
	if sched != nil {
		<-sched.Stop().Done()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
