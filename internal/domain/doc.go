// Package domain models road-condition risk assessments returned by the
// remote prediction service.
//
// # Upstream payload conventions
//
// The prediction service responds with a flat JSON object in which every
// field is optional:
//
//	{
//	  "risk_level": "High",
//	  "confidence": "72.5%",
//	  "probabilities": {"high_risk": "55%", "medium_risk": "30%", "low_risk": "15%"},
//	  "risk_factors": ["High speed zone", ...],
//	  "recommendations": ["Consider reducing speed limit in this area", ...]
//	}
//
// Absent fields are expected, not exceptional: the service evolves
// independently of this consumer and regularly drops or adds fields.
// [NormalizeAssessment] therefore degrades field by field to safe defaults
// and reserves a hard failure ([ErrUnprocessableResponse]) for payloads that
// are not a JSON object at all.
//
// # Percentage encoding
//
// Percentages travel as strings with a trailing percent sign ("72.5%").
// Canonical form after normalization is one-decimal truncation ("72.5%",
// "0.0%"), clamped to [0,100], so repeated normalization is a no-op.
// [ParsePercent] is the single parsing primitive shared by the normalizer
// and the interpreter; values that fail to parse are treated as 0.
//
// # Factor thresholds
//
// The per-factor breakdown flags a factor when the high-risk probability H
// or the medium-risk probability M exceeds its threshold pair:
//
//	road:       H > 30 or M > 60
//	weather:    H > 20 or M > 50
//	speed:      H > 25 or M > 55
//	visibility: H > 15 or M > 45
//	junction:   H > 10 or M > 40
//
// Comparisons are strictly greater-than. Thresholds descend so ambient
// factors (junction, visibility) trigger at lower probabilities than acute
// ones (road, speed). The table is a hand-tuned presentation heuristic
// layered over the model output; it is preserved literally for
// compatibility and must not be re-derived without domain input.
//
// # Severity tiers
//
// Confidence maps to a qualitative tier at the 70/40 boundaries:
// >=70 High (red), >=40 Medium (orange), else Low (green). A single tier
// lookup backs both the severity label and the color bucket so the two can
// never disagree at a boundary. The gauge angle is the linear mapping of
// confidence onto [-90, 90] degrees.
package domain
