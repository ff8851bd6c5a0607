package core

// Severity ranks a classified issue. The taxonomy is normalized to three
// levels everywhere; collectors never emit severities themselves.
type Severity string

// Severity values, highest first.
const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Rank returns a numeric weight for severity comparisons (higher = worse).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMajor:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the severity is one of the three known levels.
func (s Severity) Valid() bool {
	return s == SeverityCritical || s == SeverityMajor || s == SeverityMinor
}

// IssueRecord is the classified form of one or more signals: a severity, a
// human-readable category, a short description and an actionable fix.
// Every record traces back to a concrete signal-producing step.
type IssueRecord struct {
	Severity       Severity               `json:"severity"`
	Category       string                 `json:"category"`
	Issue          string                 `json:"issue"`
	Recommendation string                 `json:"recommendation"`
	Details        map[string]interface{} `json:"details,omitempty"`
}
