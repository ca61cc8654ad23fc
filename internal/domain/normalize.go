package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnprocessableResponse marks a payload that is not a JSON object at all.
// Callers must show a generic "try again" message and never render a partial
// assessment; everything short of this degrades to field-level defaults.
var ErrUnprocessableResponse = errors.New("unprocessable prediction response")

// NormalizeAssessment validates and coerces a raw prediction-service payload
// into a canonical Assessment. Individual missing or wrong-typed fields
// default independently and never surface as errors. The only failure mode
// is ErrUnprocessableResponse, returned when the payload cannot be parsed as
// a JSON object.
func NormalizeAssessment(raw []byte) (Assessment, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrUnprocessableResponse, err)
	}
	// JSON null decodes into a nil map without error.
	if fields == nil {
		return Assessment{}, fmt.Errorf("%w: payload is null", ErrUnprocessableResponse)
	}

	return Assessment{
		RiskLevel:       normalizeRiskLevel(stringField(fields, "risk_level")),
		Confidence:      normalizePercent(stringField(fields, "confidence")),
		Probabilities:   normalizeProbabilities(fields["probabilities"]),
		RiskFactors:     stringSliceField(fields, "risk_factors"),
		Recommendations: stringSliceField(fields, "recommendations"),
	}, nil
}

// normalizeRiskLevel accepts the exact canonical levels and maps everything
// else, including absent or wrong-typed values, to "Unknown".
func normalizeRiskLevel(value string) string {
	switch value {
	case "High", "Medium", "Low":
		return value
	default:
		return "Unknown"
	}
}

// normalizeProbabilities defaults at the leaf level: each probability stands
// or falls on its own, so a payload supplying only high_risk keeps it while
// the missing siblings become "0.0%".
func normalizeProbabilities(raw json.RawMessage) Probabilities {
	var leaves map[string]json.RawMessage
	if raw != nil {
		// A non-object probabilities value falls through with nil leaves.
		_ = json.Unmarshal(raw, &leaves)
	}
	return Probabilities{
		HighRisk:   normalizePercent(stringField(leaves, "high_risk")),
		MediumRisk: normalizePercent(stringField(leaves, "medium_risk")),
		LowRisk:    normalizePercent(stringField(leaves, "low_risk")),
	}
}

// stringField extracts a string value from a decoded object, returning ""
// when the key is absent or holds a non-string value.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// stringSliceField extracts a string sequence, treating an absent field or
// anything that is not a sequence of strings as the empty sequence.
func stringSliceField(fields map[string]json.RawMessage, key string) []string {
	raw, ok := fields[key]
	if !ok {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

// ParsePercent parses a percentage string ("72.5%"), returning 0 for
// anything that does not parse to a finite number. The trailing percent
// sign is optional. This is the single percent-parsing primitive shared by
// the normalizer and the interpreter.
func ParsePercent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// normalizePercent produces the canonical percent string: parsed, clamped to
// [0,100], and truncated to one decimal. Re-normalizing canonical output is
// a no-op.
func normalizePercent(s string) string {
	return FormatPercent(clampPercent(ParsePercent(s)))
}

// FormatPercent renders a percentage with one-decimal truncation, e.g.
// 73 -> "73.0%", 55.46 -> "55.4%".
func FormatPercent(v float64) string {
	truncated := math.Trunc(v*10) / 10
	return strconv.FormatFloat(truncated, 'f', 1, 64) + "%"
}

// clampPercent restricts a value to [0,100]. NaN maps to 0.
func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
