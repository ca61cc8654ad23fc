//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkaadapter "github.com/saferoute/risk-report-service/internal/adapter/kafka"
	"github.com/saferoute/risk-report-service/internal/assessor"
	"github.com/saferoute/risk-report-service/internal/config"
	"github.com/saferoute/risk-report-service/internal/domain"
	"github.com/saferoute/risk-report-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testExportTopic = "test-risk-report-exports"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// stubPredictor returns a fixed well-formed payload without any network I/O,
// so the test isolates the export path.
type stubPredictor struct{}

func (stubPredictor) Predict(_ context.Context, _ domain.Submission) ([]byte, error) {
	return []byte(`{
		"risk_level": "High",
		"confidence": "72.5%",
		"probabilities": {"high_risk": "55%", "medium_risk": "30%", "low_risk": "15%"}
	}`), nil
}

func (stubPredictor) CheckHealth(_ context.Context) error { return nil }

// TestExportRoundTrip verifies that a completed assessment is published to
// the export topic and that the artifact survives the trip intact.
func TestExportRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testExportTopic)

	frozen := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	cfg := &config.Config{
		ExportBrokers: []string{broker},
		ExportTopic:   testExportTopic,
		ExportEnabled: true,
	}

	exporter := kafkaadapter.NewExporter(cfg, discardLogger())
	t.Cleanup(func() { _ = exporter.Close() })

	a := assessor.New(stubPredictor{}, exporter, discardLogger(), observability.NewMetricsForTesting())

	sub := domain.Submission{
		Region:           "North",
		RoadType:         "Urban",
		WeatherCondition: "Rain",
		SpeedLimit:       60,
		TimeOfDay:        "Night",
		NumberOfVehicles: 2,
	}

	report, err := a.Assess(ctx, sub)
	require.NoError(t, err)
	require.Equal(t, "High", report.Severity)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testExportTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from export topic")

	assert.Equal(t, "North", string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "High", headers["severity"])
	assert.Equal(t, frozen.Format(time.RFC3339), headers["exported_at"])

	var artifact domain.ExportArtifact
	require.NoError(t, json.Unmarshal(msg.Value, &artifact))
	assert.Equal(t, frozen, artifact.ExportedAt.UTC())
	assert.Equal(t, sub, artifact.Inputs)
	assert.Equal(t, "72.5%", artifact.Results.Assessment.Confidence)
	assert.Equal(t, 1, artifact.Results.Factors.Road)
	assert.Equal(t, "red", artifact.Results.Color)
}
