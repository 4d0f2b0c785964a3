// Package receipt provides stable evidence artifacts for audit/compliance.
package receipt

// ReceiptSchemaVersion current
const ReceiptSchemaVersion = "1.0"

// Receipt structure
type Receipt struct {
	SchemaVersion string             `json:"schema_version"`
	OpID          string             `json:"op_id"`
	TsStart       string             `json:"ts_start"`
	TsEnd         string             `json:"ts_end"`
	Command       string             `json:"command"`
	Args          []string           `json:"args"`
	ArgsRedacted  bool               `json:"args_redacted,omitempty"` // true if any args were sanitized
	Result        Result             `json:"result"`
	Evaluation    *EvaluationSummary `json:"evaluation,omitempty"`
	Policy        *PolicySummary     `json:"policy,omitempty"`
}

// Result status
type Result struct {
	Status string `json:"status"` // "success" or "fail"
	Error  string `json:"error,omitempty"`
}

// EvaluationSummary detail. MetricsDigest is the sha256 of the sealed
// telemetry record, so a receipt detects post-hoc report edits.
type EvaluationSummary struct {
	ResolverRule  string   `json:"resolver_rule"`
	CategoriesHit []string `json:"categories_hit,omitempty"`
	Blocked       bool     `json:"blocked"`
	Refused       bool     `json:"refused"`
	MetricsDigest string   `json:"metrics_sha256,omitempty"`
}

// PolicySummary detail
type PolicySummary struct {
	Preset   string    `json:"preset,omitempty"` // baseline|strict|custom
	Status   string    `json:"status"`           // pass|warn|fail
	RulesHit []RuleHit `json:"rules_hit,omitempty"`
}

// RuleHit detail
type RuleHit struct {
	Name     string `json:"name"`
	Severity string `json:"severity"` // warn|error
}
