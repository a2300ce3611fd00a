package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Market   MarketConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MarketConfig holds market-data configuration.
type MarketConfig struct {
	// YahooBaseURL is the chart API root, without a trailing slash.
	YahooBaseURL string
	// CacheTTL is how long a fetched price is served from the cache.
	CacheTTL time.Duration
	// RefreshSchedule is a cron spec on which the price cache is flushed.
	// Empty disables the refresher.
	RefreshSchedule string
	// RequestsPerSecond limits outgoing quote requests.
	RequestsPerSecond float64
	// FetchConcurrency bounds parallel instrument computations.
	FetchConcurrency int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_gains.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Market: MarketConfig{
			YahooBaseURL:    strings.TrimRight(getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"), "/"),
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 5m"),
		},
	}

	var err error
	if config.Market.CacheTTL, err = time.ParseDuration(getEnv("PRICE_CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid PRICE_CACHE_TTL: %w", err)
	}
	if config.Market.RequestsPerSecond, err = strconv.ParseFloat(getEnv("PRICE_REQUESTS_PER_SECOND", "2"), 64); err != nil {
		return nil, fmt.Errorf("invalid PRICE_REQUESTS_PER_SECOND: %w", err)
	}
	if config.Market.FetchConcurrency, err = strconv.Atoi(getEnv("PRICE_FETCH_CONCURRENCY", "4")); err != nil {
		return nil, fmt.Errorf("invalid PRICE_FETCH_CONCURRENCY: %w", err)
	}
	if config.Market.FetchConcurrency < 1 {
		return nil, fmt.Errorf("invalid PRICE_FETCH_CONCURRENCY: must be at least 1, got %d", config.Market.FetchConcurrency)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
