package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings. It is loaded once at startup and
// threaded through the container; no component reads the environment itself.
type Config struct {
	Host string
	Port string

	// Azure storage credentials. When AccountName is empty the server runs
	// with an in-memory blob source (local runs and tests).
	StorageAccountName string
	StorageAccountKey  string

	// Container watched for newly uploaded images.
	WatchContainer string
	PollInterval   time.Duration

	// Path of the sqlite database holding analysis results.
	DatabasePath string

	RequestTimeout    time.Duration
	AnalyzerTimeout   time.Duration
	MaxConcurrentJobs int
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		StorageAccountName: os.Getenv("STORAGE_ACCOUNT_NAME"),
		StorageAccountKey:  os.Getenv("STORAGE_ACCOUNT_KEY"),
		WatchContainer:     getEnvOrDefault("WATCH_CONTAINER", "images"),
		PollInterval:       parseDurationOrDefault("POLL_INTERVAL", 10*time.Second),
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", "analysis.db"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		AnalyzerTimeout:    parseDurationOrDefault("ANALYZER_TIMEOUT", 20*time.Second),
		MaxConcurrentJobs:  int(parseIntOrDefault("MAX_CONCURRENT_JOBS", 4)),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if strings.TrimSpace(cfg.WatchContainer) == "" {
		return nil, fmt.Errorf("WATCH_CONTAINER must not be empty")
	}
	if cfg.MaxConcurrentJobs <= 0 {
		return nil, fmt.Errorf("MAX_CONCURRENT_JOBS must be > 0 (got %d)", cfg.MaxConcurrentJobs)
	}
	if cfg.RequestTimeout <= 0 || cfg.AnalyzerTimeout <= 0 || cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, analyzer=%s, poll=%s)",
			cfg.RequestTimeout, cfg.AnalyzerTimeout, cfg.PollInterval)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
