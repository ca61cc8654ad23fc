package kafka

import (
	"testing"
	"time"

	"github.com/saferoute/risk-report-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeArtifact(t *testing.T) {
	exportedAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	artifact := domain.ExportArtifact{
		ExportedAt: exportedAt,
		Inputs: domain.Submission{
			Region:           "North",
			RoadType:         "Urban",
			WeatherCondition: "Rain",
			SpeedLimit:       60,
			TimeOfDay:        "Night",
			NumberOfVehicles: 2,
		},
		Results: domain.Report{
			Assessment: domain.Assessment{RiskLevel: "High", Confidence: "72.5%"},
			Severity:   "High",
			Color:      "red",
		},
	}

	msg, err := serializeArtifact(artifact)
	require.NoError(t, err)

	assert.Equal(t, []byte("North"), msg.Key)
	assert.Contains(t, string(msg.Value), `"severity":"High"`)
	assert.Contains(t, string(msg.Value), `"Road Type":"Urban"`)

	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "severity", msg.Headers[0].Key)
	assert.Equal(t, []byte("High"), msg.Headers[0].Value)
	assert.Equal(t, "exported_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(exportedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeArtifact_EmptyRegionKey(t *testing.T) {
	msg, err := serializeArtifact(domain.ExportArtifact{})
	require.NoError(t, err)
	assert.Empty(t, msg.Key)
}
