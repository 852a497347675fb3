package report

import "ezra/internal/models"

// Severity bands. Boundary values map to the higher band.
const (
	severityVeryHigh = 81
	severityHigh     = 49
	severityMedium   = 25
)

// Score returns the risk's severity, computing probability*impact when no
// explicit severity was provided.
func Score(r models.Risk) int {
	if r.Severity > 0 {
		return r.Severity
	}
	return r.Probability * r.Impact
}

// SeverityLabel maps a severity score to its Hebrew display label.
func SeverityLabel(score int) string {
	switch {
	case score >= severityVeryHigh:
		return "גבוהה מאוד"
	case score >= severityHigh:
		return "גבוהה"
	case score >= severityMedium:
		return "בינונית"
	default:
		return "נמוכה"
	}
}

// SeverityClass maps a severity score to the report stylesheet class.
func SeverityClass(score int) string {
	switch {
	case score >= severityVeryHigh:
		return "risk-very-high"
	case score >= severityHigh:
		return "risk-high"
	case score >= severityMedium:
		return "risk-medium"
	default:
		return "risk-low"
	}
}

// CountBySeverity tallies risks into the four severity bands.
func CountBySeverity(risks []models.Risk) models.RiskCounts {
	var c models.RiskCounts
	for _, r := range risks {
		switch s := Score(r); {
		case s >= severityVeryHigh:
			c.VeryHigh++
		case s >= severityHigh:
			c.High++
		case s >= severityMedium:
			c.Medium++
		default:
			c.Low++
		}
	}
	return c
}
