// Package resolver routes recognized paradox families to deterministic
// handlers. The rule table is static, ordered data: the first matching
// rule executes and dispatch stops. Ties in priority fall back to
// declaration order.
package resolver

import (
	"regexp"
	"sort"

	"github.com/paradoxe/paradoxe/internal/models"
)

// DefaultRuleID identifies the implicit fallback handler.
const DefaultRuleID = "default"

// Request is the read-only input to a handler.
type Request struct {
	Text    string
	Report  models.GuardReport
	Policy  *models.PolicyContext
	Breaker *Breaker
}

// Handler executes one recognized family. Handlers never raise on
// well-formed input; anything ambiguous falls through to default.
type Handler func(req Request) models.ResolverResult

// Rule binds a matcher to a handler.
type Rule struct {
	ID       string
	Priority int
	Match    func(text string, report models.GuardReport) bool
	Handle   Handler
}

// Registry is the ordered rule table plus the containment breaker.
// Read-only after construction; safe for concurrent dispatch.
type Registry struct {
	rules   []Rule
	breaker *Breaker
}

// NewRegistry builds the default table. Rules are stably sorted by
// priority so declaration order is the authoritative tie-break.
func NewRegistry() *Registry {
	r := &Registry{
		rules:   defaultRules(),
		breaker: NewBreaker(BreakerThreshold, BreakerWindow),
	}
	sort.SliceStable(r.rules, func(i, j int) bool {
		return r.rules[i].Priority < r.rules[j].Priority
	})
	return r
}

// Rules exposes the table for coverage tests.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Breaker exposes the latch for orchestrator telemetry.
func (r *Registry) Breaker() *Breaker { return r.breaker }

// Dispatch runs the first matching rule against the sanitized text.
// Exactly one rule (or the default) fires per evaluation.
func (r *Registry) Dispatch(text string, report models.GuardReport, policy *models.PolicyContext) (models.ResolverResult, string) {
	req := Request{Text: text, Report: report, Policy: policy, Breaker: r.breaker}
	for _, rule := range r.rules {
		if rule.Match(text, report) {
			res := rule.Handle(req)
			id := rule.ID
			if res.RuleID != "" {
				id = res.RuleID
			}
			return res, id
		}
	}
	return handleDefault(req), DefaultRuleID
}

// matchAny compiles case-insensitive patterns into a matcher closure.
func matchAny(patterns ...string) func(string, models.GuardReport) bool {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return func(text string, _ models.GuardReport) bool {
		for _, re := range res {
			if re.MatchString(text) {
				return true
			}
		}
		return false
	}
}
