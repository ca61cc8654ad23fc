package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/saferoute/risk-report-service/internal/adapter/httpapi"
	kafkaadapter "github.com/saferoute/risk-report-service/internal/adapter/kafka"
	"github.com/saferoute/risk-report-service/internal/adapter/prediction"
	"github.com/saferoute/risk-report-service/internal/assessor"
	"github.com/saferoute/risk-report-service/internal/config"
	"github.com/saferoute/risk-report-service/internal/domain"
	"github.com/saferoute/risk-report-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var predictor domain.Predictor = prediction.NewClient(cfg.PredictionURL, cfg.PredictionTimeout, metrics, logger)
	if cfg.CacheEnabled {
		predictor = prediction.NewCachedPredictor(predictor, cfg.CacheSize, metrics)
		logger.Info("prediction cache enabled", "cache_size", cfg.CacheSize)
	}

	// Export publishing is feature-flagged via EXPORT_BROKERS / EXPORT_ENABLED.
	var exporter assessor.Exporter
	var kafkaExporter *kafkaadapter.Exporter
	if cfg.ExportEnabled {
		kafkaExporter = kafkaadapter.NewExporter(cfg, logger)
		exporter = kafkaExporter
		metrics.ExportEnabled.Set(1)
		logger.Info("export publishing enabled", "topic", cfg.ExportTopic, "brokers", cfg.ExportBrokers)
	} else {
		logger.Info("export publishing disabled")
	}

	a := assessor.New(predictor, exporter, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, a, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaExporter != nil {
		if err := kafkaExporter.Close(); err != nil {
			logger.Error("kafka exporter close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
