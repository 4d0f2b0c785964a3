// Package models holds the shared data model for the containment pipeline.
package models

// FindingCategory classifies a guard detection
type FindingCategory string

const (
	CategoryRoleConfusion FindingCategory = "role_confusion"
	CategoryEscalation    FindingCategory = "escalation"
	CategoryAnomaly       FindingCategory = "anomaly"
	CategoryMutation      FindingCategory = "mutation"
	CategoryLeakBaiting   FindingCategory = "leak_baiting"
)

// Namespaced returns the category in guard:<category> form for telemetry.
func (c FindingCategory) Namespaced() string {
	return "guard:" + string(c)
}

// Severity ordinal, higher is worse
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "none"
	}
}

// Finding is a single guard detection. Immutable once produced.
type Finding struct {
	Category FindingCategory `json:"category"`
	Detail   string          `json:"detail"`
	Severity Severity        `json:"severity"`
}

// GuardReport is the outcome of one guard pass. Read-only once built.
type GuardReport struct {
	Findings      []Finding `json:"findings"`
	SanitizedText string    `json:"sanitized_text"`
	Blocked       bool      `json:"blocked"`
}

// Matched reports whether any finding in the category was produced.
func (r GuardReport) Matched(cat FindingCategory) bool {
	for _, f := range r.Findings {
		if f.Category == cat {
			return true
		}
	}
	return false
}

// MaxSeverity returns the highest severity recorded for the category.
func (r GuardReport) MaxSeverity(cat FindingCategory) Severity {
	max := SeverityNone
	for _, f := range r.Findings {
		if f.Category == cat && f.Severity > max {
			max = f.Severity
		}
	}
	return max
}

// Categories returns the namespaced categories hit, in scan order, deduped.
func (r GuardReport) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range r.Findings {
		ns := f.Category.Namespaced()
		if !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	return out
}
