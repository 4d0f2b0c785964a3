package models

// Metric is one ordered telemetry entry emitted by a resolver.
type Metric struct {
	Key   string
	Value any
}

// ResolverResult is the outcome of exactly one resolver execution.
// It is merged into the telemetry record and then discarded.
type ResolverResult struct {
	// RuleID overrides the matched rule's id when non-empty. Used by
	// handlers that report a different identity under strict policy.
	RuleID     string
	OutputText string
	Tags       []string
	Metrics    []Metric
}

// Refused reports whether the result carries a refused=true metric.
func (r ResolverResult) Refused() bool {
	for _, m := range r.Metrics {
		if m.Key == "refused" {
			if b, ok := m.Value.(bool); ok {
				return b
			}
		}
	}
	return false
}
