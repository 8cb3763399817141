package config

import (
	"testing"
	"time"
)

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing API key, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "test_key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.AlphavantageAPIKey != "test_key" {
		t.Errorf("AlphavantageAPIKey = %q, want test_key", cfg.AlphavantageAPIKey)
	}
	if cfg.AlphavantageBaseURL != "https://www.alphavantage.co/query" {
		t.Errorf("AlphavantageBaseURL = %q, want production default", cfg.AlphavantageBaseURL)
	}
	if cfg.CacheFile != "data/stock_cache.json" {
		t.Errorf("CacheFile = %q, want data/stock_cache.json", cfg.CacheFile)
	}
	if cfg.CacheExpiry != 24*time.Hour {
		t.Errorf("CacheExpiry = %v, want 24h", cfg.CacheExpiry)
	}
	if cfg.MaxRequestsPerMinute != 5 {
		t.Errorf("MaxRequestsPerMinute = %d, want 5", cfg.MaxRequestsPerMinute)
	}
	if cfg.RequestPause != 13*time.Second {
		t.Errorf("RequestPause = %v, want 13s", cfg.RequestPause)
	}
	if cfg.StockLimit != 50 {
		t.Errorf("StockLimit = %d, want 50", cfg.StockLimit)
	}
	if cfg.RecordsPerPage != 10 {
		t.Errorf("RecordsPerPage = %d, want 10", cfg.RecordsPerPage)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.RefreshSchedule != "" {
		t.Errorf("RefreshSchedule = %q, want empty", cfg.RefreshSchedule)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "override_key")
	t.Setenv("ALPHAVANTAGE_BASE_URL", "http://localhost:9999/query")
	t.Setenv("CACHE_FILE", "/tmp/test_cache.json")
	t.Setenv("CACHE_EXPIRY", "1h")
	t.Setenv("MAX_REQUESTS_PER_MINUTE", "75")
	t.Setenv("REQUEST_PAUSE", "1s")
	t.Setenv("STOCK_LIMIT", "200")
	t.Setenv("RECORDS_PER_PAGE", "25")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("REFRESH_SCHEDULE", "0 6 * * *")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.AlphavantageBaseURL != "http://localhost:9999/query" {
		t.Errorf("AlphavantageBaseURL = %q, want override", cfg.AlphavantageBaseURL)
	}
	if cfg.CacheFile != "/tmp/test_cache.json" {
		t.Errorf("CacheFile = %q, want /tmp/test_cache.json", cfg.CacheFile)
	}
	if cfg.CacheExpiry != time.Hour {
		t.Errorf("CacheExpiry = %v, want 1h", cfg.CacheExpiry)
	}
	if cfg.MaxRequestsPerMinute != 75 {
		t.Errorf("MaxRequestsPerMinute = %d, want 75", cfg.MaxRequestsPerMinute)
	}
	if cfg.RequestPause != time.Second {
		t.Errorf("RequestPause = %v, want 1s", cfg.RequestPause)
	}
	if cfg.StockLimit != 200 {
		t.Errorf("StockLimit = %d, want 200", cfg.StockLimit)
	}
	if cfg.RefreshSchedule != "0 6 * * *" {
		t.Errorf("RefreshSchedule = %q, want cron expression", cfg.RefreshSchedule)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidQuota(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "test_key")
	t.Setenv("MAX_REQUESTS_PER_MINUTE", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for zero request quota, got nil")
	}
}
