package domain

import (
	"context"
	"time"
)

// Probabilities holds the per-class probability strings of an assessment.
// Each leaf is canonicalized independently; a payload that supplies only
// high_risk still carries it through with the siblings defaulted to "0.0%".
type Probabilities struct {
	HighRisk   string `json:"high_risk"`
	MediumRisk string `json:"medium_risk"`
	LowRisk    string `json:"low_risk"`
}

// Assessment is the canonical, fully-defaulted representation of a
// prediction-service response. It is built fresh for every submission and
// carries no identity beyond that request/response cycle.
type Assessment struct {
	RiskLevel       string        `json:"risk_level"` // "High", "Medium", "Low", or "Unknown"
	Confidence      string        `json:"confidence"` // canonical percent string, e.g. "72.5%"
	Probabilities   Probabilities `json:"probabilities"`
	RiskFactors     []string      `json:"risk_factors"`
	Recommendations []string      `json:"recommendations"`
}

// RiskFactorFlags is the per-factor breakdown: 1 = elevated risk, 0 = not.
// Field order is the fixed rendering order of the five factors.
type RiskFactorFlags struct {
	Road       int `json:"road"`
	Weather    int `json:"weather"`
	Speed      int `json:"speed"`
	Visibility int `json:"visibility"`
	Junction   int `json:"junction"`
}

// Report is the view-model handed to the rendering collaborator: the
// canonical assessment plus everything derived from it.
type Report struct {
	Assessment  Assessment      `json:"assessment"`
	Factors     RiskFactorFlags `json:"risk_breakdown"`
	Severity    string          `json:"severity"`    // "High", "Medium", or "Low"
	Color       string          `json:"color"`       // "red", "orange", or "green"
	GaugeAngle  float64         `json:"gauge_angle"` // degrees in [-90, 90]
	GeneratedAt time.Time       `json:"generated_at"`
}

// ExportArtifact is the timestamped {inputs, results} dump published for
// downstream analytics and served by the export endpoint.
type ExportArtifact struct {
	ExportedAt time.Time  `json:"exported_at"`
	Inputs     Submission `json:"inputs"`
	Results    Report     `json:"results"`
}

// NewExportArtifact stamps a completed assessment for export.
func NewExportArtifact(inputs Submission, results Report) ExportArtifact {
	return ExportArtifact{
		ExportedAt: clock.Now(),
		Inputs:     inputs,
		Results:    results,
	}
}

// Predictor obtains raw risk predictions from the remote prediction service.
type Predictor interface {
	// Predict submits road conditions and returns the raw response payload,
	// unparsed. Normalization is the caller's concern.
	Predict(ctx context.Context, sub Submission) ([]byte, error)

	// CheckHealth reports whether the prediction service is reachable.
	CheckHealth(ctx context.Context) error
}
