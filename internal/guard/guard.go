// Package guard runs the surface-level detectors that precede resolver
// dispatch. Detectors are independent and order-insensitive; findings
// are collected in a fixed scan order so reports are deterministic.
package guard

import (
	"strings"

	"github.com/paradoxe/paradoxe/internal/models"
)

// Config for one scan. Zero value is usable.
type Config struct {
	// BlockOnHighAnomaly short-circuits the evaluation when the
	// anomaly detector reports high severity.
	BlockOnHighAnomaly bool
}

// Scan produces the guard report for one evaluation. No I/O, no shared
// state: safe to call concurrently.
func Scan(raw string, cfg Config) models.GuardReport {
	sanitized := Sanitize(raw)

	var findings []models.Finding
	findings = append(findings, matchRules(sanitized, roleConfusionRules, models.CategoryRoleConfusion)...)
	findings = append(findings, matchRules(sanitized, escalationRules, models.CategoryEscalation)...)
	findings = append(findings, detectAnomaly(raw, sanitized)...)
	findings = append(findings, matchRules(sanitized, mutationKeywordRules, models.CategoryMutation)...)
	findings = append(findings, detectMutationHeuristics(sanitized)...)
	findings = append(findings, detectLeakBaiting(sanitized)...)

	report := models.GuardReport{
		Findings:      findings,
		SanitizedText: sanitized,
	}

	if cfg.BlockOnHighAnomaly && report.MaxSeverity(models.CategoryAnomaly) >= models.SeverityHigh {
		report.Blocked = true
	}

	return report
}

func matchRules(text string, rules []patternRule, cat models.FindingCategory) []models.Finding {
	var out []models.Finding
	for _, r := range rules {
		if r.re.MatchString(text) {
			out = append(out, models.Finding{
				Category: cat,
				Detail:   r.id,
				Severity: r.severity,
			})
		}
	}
	return out
}

func detectLeakBaiting(text string) []models.Finding {
	out := matchRules(text, leakBaitingRules, models.CategoryLeakBaiting)
	for _, token := range canaryTokens {
		if strings.Contains(text, token) {
			out = append(out, models.Finding{
				Category: models.CategoryLeakBaiting,
				Detail:   "canary token present",
				Severity: models.SeverityHigh,
			})
		}
	}
	return out
}
