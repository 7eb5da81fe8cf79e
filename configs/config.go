package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration values.
type Config struct {
	ServerHost string
	ServerPort string
	ServerMode string

	LogLevel    string
	CORSOrigins []string
	UserAgent   string

	FetchTimeout time.Duration
	MaxBodyBytes int64
	MaxRedirects int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	MaxConcurrentCrawls int
	CrawlQueueSize      int
}

// Load reads configuration exclusively from environment variables (optionally .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.ServerHost = getEnv("HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.ServerMode = getEnv("GIN_MODE", "debug")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// CORS
	origins := getEnv("CORS_ORIGINS", "")
	if origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}

	// Fetching
	cfg.UserAgent = getEnv("USER_AGENT", "CrawlTorch-Bot/1.0")

	timeoutSec, err := getEnvInt("FETCH_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = time.Duration(timeoutSec) * time.Second

	maxBodyKB, err := getEnvInt("MAX_BODY_KB", 2048)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBodyKB) * 1024

	cfg.MaxRedirects, err = getEnvInt("MAX_REDIRECTS", 10)
	if err != nil {
		return nil, err
	}

	// Rate limiting
	cfg.RateLimitRequests, err = getEnvInt("RATE_LIMIT_REQUESTS", 100)
	if err != nil {
		return nil, err
	}
	windowSec, err := getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = time.Duration(windowSec) * time.Second

	// Crawl sessions
	cfg.MaxConcurrentCrawls, err = getEnvInt("MAX_CONCURRENT_CRAWLS", 4)
	if err != nil {
		return nil, err
	}
	cfg.CrawlQueueSize, err = getEnvInt("CRAWL_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

// getEnvInt returns an integer env var or default.
func getEnvInt(key string, def int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
