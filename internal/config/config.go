package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the stock analyzer application.
// It is built once at process start and passed into every constructor;
// nothing reads configuration ambiently after that.
type Config struct {
	// Alpha Vantage API access
	AlphavantageAPIKey  string `mapstructure:"alphavantage_api_key"`
	AlphavantageBaseURL string `mapstructure:"alphavantage_base_url"`

	// Cache artifact
	CacheFile   string        `mapstructure:"cache_file"`
	CacheExpiry time.Duration `mapstructure:"cache_expiry"`

	// Upstream pacing (Alpha Vantage free tier: 5 requests per minute)
	MaxRequestsPerMinute int           `mapstructure:"max_requests_per_minute"`
	RequestPause         time.Duration `mapstructure:"request_pause"`

	// Application settings
	StockLimit     int    `mapstructure:"stock_limit"`
	RecordsPerPage int    `mapstructure:"records_per_page"`
	ListenAddr     string `mapstructure:"listen_addr"`

	// Optional cron expression for background refreshes, e.g. "0 6 * * *".
	RefreshSchedule string `mapstructure:"refresh_schedule"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - ALPHAVANTAGE_API_KEY (required)
//   - ALPHAVANTAGE_BASE_URL (optional, defaults to production)
//   - CACHE_FILE, CACHE_EXPIRY (optional)
//   - MAX_REQUESTS_PER_MINUTE, REQUEST_PAUSE (optional)
//   - STOCK_LIMIT, RECORDS_PER_PAGE, LISTEN_ADDR (optional)
//   - REFRESH_SCHEDULE, LOG_LEVEL (optional)
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	v.SetDefault("alphavantage_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("cache_file", "data/stock_cache.json")
	v.SetDefault("cache_expiry", "24h")
	v.SetDefault("max_requests_per_minute", 5)
	v.SetDefault("request_pause", "13s")
	v.SetDefault("stock_limit", 50)
	v.SetDefault("records_per_page", 10)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.stockanalyzer")
	_ = v.ReadInConfig()

	v.BindEnv("alphavantage_api_key", "ALPHAVANTAGE_API_KEY")
	v.BindEnv("alphavantage_base_url", "ALPHAVANTAGE_BASE_URL")
	v.BindEnv("cache_file", "CACHE_FILE")
	v.BindEnv("cache_expiry", "CACHE_EXPIRY")
	v.BindEnv("max_requests_per_minute", "MAX_REQUESTS_PER_MINUTE")
	v.BindEnv("request_pause", "REQUEST_PAUSE")
	v.BindEnv("stock_limit", "STOCK_LIMIT")
	v.BindEnv("records_per_page", "RECORDS_PER_PAGE")
	v.BindEnv("listen_addr", "LISTEN_ADDR")
	v.BindEnv("refresh_schedule", "REFRESH_SCHEDULE")
	v.BindEnv("log_level", "LOG_LEVEL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.AlphavantageAPIKey == "" {
		return nil, fmt.Errorf("missing required configuration: ALPHAVANTAGE_API_KEY")
	}
	if config.MaxRequestsPerMinute < 1 {
		return nil, fmt.Errorf("max_requests_per_minute must be at least 1, got %d", config.MaxRequestsPerMinute)
	}

	return config, nil
}
