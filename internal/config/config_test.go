package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPredictionURL = "http://localhost:5000"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PREDICTION_URL", testPredictionURL)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testPredictionURL, cfg.PredictionURL)
	assert.Equal(t, 5*time.Second, cfg.PredictionTimeout)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 1000, cfg.CacheSize)
	assert.False(t, cfg.ExportEnabled)
	assert.Empty(t, cfg.ExportBrokers)
	assert.Equal(t, "risk-report-exports", cfg.ExportTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("PREDICTION_URL", testPredictionURL)
	t.Setenv("PREDICTION_TIMEOUT", "10s")
	t.Setenv("PREDICTION_CACHE_ENABLED", "false")
	t.Setenv("PREDICTION_CACHE_SIZE", "500")
	t.Setenv("EXPORT_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("EXPORT_TOPIC", "custom-exports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.PredictionTimeout)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 500, cfg.CacheSize)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.ExportBrokers)
	assert.Equal(t, "custom-exports", cfg.ExportTopic)
	assert.True(t, cfg.ExportEnabled)
}

func TestLoad_MissingPredictionURL(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREDICTION_URL")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("PREDICTION_URL", testPredictionURL)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativePredictionTimeout(t *testing.T) {
	t.Setenv("PREDICTION_URL", testPredictionURL)
	t.Setenv("PREDICTION_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREDICTION_TIMEOUT")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("PREDICTION_URL", testPredictionURL)
	t.Setenv("PREDICTION_CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREDICTION_CACHE_SIZE")
}

func TestLoad_ExportEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("PREDICTION_URL", testPredictionURL)
	t.Setenv("EXPORT_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXPORT_BROKERS")
}

func TestLoad_BrokersImplyExportEnabled(t *testing.T) {
	t.Setenv("PREDICTION_URL", testPredictionURL)
	t.Setenv("EXPORT_BROKERS", "localhost:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.ExportEnabled)
}

func TestLoad_ExportExplicitlyDisabled(t *testing.T) {
	t.Setenv("PREDICTION_URL", testPredictionURL)
	t.Setenv("EXPORT_BROKERS", "localhost:9092")
	t.Setenv("EXPORT_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.ExportEnabled)
}
