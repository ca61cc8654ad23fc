package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Prediction service configuration.
	PredictionURL     string
	PredictionTimeout time.Duration
	CacheEnabled      bool
	CacheSize         int

	// Export publishing configuration.
	ExportBrokers []string
	ExportTopic   string
	ExportEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	predictionTimeout, err := parseDuration("PREDICTION_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseCacheSize()
	if err != nil {
		return nil, err
	}

	exportBrokers := parseBrokers(os.Getenv("EXPORT_BROKERS"))
	exportEnabled := len(exportBrokers) > 0
	if v := os.Getenv("EXPORT_ENABLED"); v != "" {
		exportEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PredictionURL:     os.Getenv("PREDICTION_URL"),
		PredictionTimeout: predictionTimeout,
		CacheEnabled:      envOrDefault("PREDICTION_CACHE_ENABLED", "true") == "true",
		CacheSize:         cacheSize,

		ExportBrokers: exportBrokers,
		ExportTopic:   envOrDefault("EXPORT_TOPIC", "risk-report-exports"),
		ExportEnabled: exportEnabled,
	}

	if cfg.PredictionURL == "" {
		return nil, errors.New("PREDICTION_URL is required")
	}
	if cfg.ExportEnabled && len(cfg.ExportBrokers) == 0 {
		return nil, errors.New("EXPORT_ENABLED is true but EXPORT_BROKERS is not set")
	}
	if cfg.ExportEnabled && cfg.ExportTopic == "" {
		return nil, errors.New("EXPORT_TOPIC is required when export is enabled")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseCacheSize() (int, error) {
	s := os.Getenv("PREDICTION_CACHE_SIZE")
	if s == "" {
		return 1000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid PREDICTION_CACHE_SIZE")
	}
	return n, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
