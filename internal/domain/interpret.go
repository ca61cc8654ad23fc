package domain

// tier is the shared qualitative bucket behind both the severity label and
// the color bucket. Routing both through one lookup guarantees they can
// never disagree at a boundary.
type tier int

const (
	tierLow tier = iota
	tierMedium
	tierHigh
)

// tierOf maps a confidence percentage to its tier: >=70 high, >=40 medium,
// else low. NaN fails both comparisons and lands in the low tier.
func tierOf(confidence float64) tier {
	switch {
	case confidence >= 70:
		return tierHigh
	case confidence >= 40:
		return tierMedium
	default:
		return tierLow
	}
}

// DeriveBreakdown evaluates the five fixed factors against the high-risk and
// medium-risk probabilities. Each factor applies its threshold pair as an OR
// condition with strictly greater-than comparisons; boundary values do not
// trigger. The threshold table is a tuned heuristic, kept literal.
func DeriveBreakdown(a Assessment) RiskFactorFlags {
	h := ParsePercent(a.Probabilities.HighRisk)
	m := ParsePercent(a.Probabilities.MediumRisk)

	return RiskFactorFlags{
		Road:       flagWhen(h > 30 || m > 60),
		Weather:    flagWhen(h > 20 || m > 50),
		Speed:      flagWhen(h > 25 || m > 55),
		Visibility: flagWhen(h > 15 || m > 45),
		Junction:   flagWhen(h > 10 || m > 40),
	}
}

func flagWhen(elevated bool) int {
	if elevated {
		return 1
	}
	return 0
}

// SeverityOf maps a confidence percentage to a qualitative severity label.
// An unparseable confidence arrives as 0 (or NaN) and defaults to "Low";
// severity is always one of the three tiers, never "Unknown".
func SeverityOf(confidence float64) string {
	switch tierOf(confidence) {
	case tierHigh:
		return "High"
	case tierMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// ColorBucketOf maps a confidence percentage to the report's color bucket
// using the same tier boundaries as SeverityOf.
func ColorBucketOf(confidence float64) string {
	switch tierOf(confidence) {
	case tierHigh:
		return "red"
	case tierMedium:
		return "orange"
	default:
		return "green"
	}
}

// GaugeAngleOf maps confidence linearly onto gauge degrees:
// 0% -> -90, 50% -> 0, 100% -> 90. Input is clamped to [0,100] first, so
// NaN and out-of-range values render as an empty or full gauge rather than
// an impossible needle position.
func GaugeAngleOf(confidence float64) float64 {
	c := clampPercent(confidence)
	return (c/100)*180 - 90
}

// BuildReport assembles the full view-model for a normalized assessment.
// Normalization must have completed first; BuildReport assumes canonical
// percent strings and performs no defaulting of its own.
func BuildReport(a Assessment) Report {
	confidence := ParsePercent(a.Confidence)
	return Report{
		Assessment:  a,
		Factors:     DeriveBreakdown(a),
		Severity:    SeverityOf(confidence),
		Color:       ColorBucketOf(confidence),
		GaugeAngle:  GaugeAngleOf(confidence),
		GeneratedAt: clock.Now(),
	}
}
