package models

// PolicyMode controls whether rule failures affect the exit code
type PolicyMode string

const (
	PolicyModeWarn    PolicyMode = "warn"
	PolicyModeEnforce PolicyMode = "enforce"
)

// PolicySeverity per rule
type PolicySeverity string

const (
	PolicySeverityWarn  PolicySeverity = "warn"
	PolicySeverityError PolicySeverity = "error"
)

// PolicyConfig from yaml
type PolicyConfig struct {
	Name  string       `yaml:"name"`
	Mode  PolicyMode   `yaml:"mode"`
	Rules []PolicyRule `yaml:"rules"`
}

// PolicyRule cel rule
type PolicyRule struct {
	Name       string         `yaml:"name"`
	Expr       string         `yaml:"expr"`
	Severity   PolicySeverity `yaml:"severity"`
	FailureMsg string         `yaml:"failure_msg"`
}

// PolicyResult eval result
type PolicyResult struct {
	RuleName   string
	Passed     bool
	Severity   PolicySeverity
	FailureMsg string
}
