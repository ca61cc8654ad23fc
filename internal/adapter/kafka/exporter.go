package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/saferoute/risk-report-service/internal/config"
	"github.com/saferoute/risk-report-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Exporter publishes assessment export artifacts to a Kafka topic for
// downstream analytics. It implements assessor.Exporter.
type Exporter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewExporter creates a Kafka producer for the configured export topic.
func NewExporter(cfg *config.Config, logger *slog.Logger) *Exporter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.ExportBrokers...),
		Topic:        cfg.ExportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Exporter{writer: w, logger: logger}
}

// Publish serializes and writes one export artifact to the export topic.
func (e *Exporter) Publish(ctx context.Context, artifact domain.ExportArtifact) error {
	msg, err := serializeArtifact(artifact)
	if err != nil {
		return err
	}
	return e.writer.WriteMessages(ctx, msg)
}

func (e *Exporter) Close() error {
	return e.writer.Close()
}

// serializeArtifact marshals an export artifact into a Kafka message. The
// key is the submission region so per-region exports land in one partition.
func serializeArtifact(artifact domain.ExportArtifact) (kafkago.Message, error) {
	data, err := json.Marshal(artifact)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize export artifact: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(artifact.Inputs.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(artifact.Results.Severity)},
			{Key: "exported_at", Value: []byte(artifact.ExportedAt.Format(time.RFC3339))},
		},
	}, nil
}
