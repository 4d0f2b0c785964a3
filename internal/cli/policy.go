package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/paradoxe/paradoxe/internal/engine"
	"github.com/paradoxe/paradoxe/internal/models"
	"github.com/paradoxe/paradoxe/internal/observability/receipt"
	"github.com/paradoxe/paradoxe/internal/policy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// policyCmd group
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Compliance policy commands",
	Long:  `Validate and inspect CEL compliance policies over sealed evaluations.`,
}

// policyValidateCmd compiles a policy without evaluating anything
var policyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compile-check a policy",
	Long: `Compiles every CEL rule in a policy and reports the first failure.

Example:
  paradoxe policy validate --preset strict
  paradoxe policy validate --policy ./my-policy.yaml`,
	SilenceUsage: true,
	RunE:         runPolicyValidate,
}

// policyExplainCmd outputs policy rules with metadata
var policyExplainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Output policy rules in human or machine form",
	Long: `Display policy rules, their severities, expressions and failure
messages as Markdown or JSON.

Example:
  paradoxe policy explain --preset baseline
  paradoxe policy explain --policy ./my-policy.yaml --json`,
	SilenceUsage: true,
	RunE:         runPolicyExplain,
}

var (
	validatePreset string
	validatePolicy string
	explainPreset  string
	explainPolicy  string
	explainJSON    bool
)

func init() {
	policyValidateCmd.Flags().StringVar(&validatePreset, "preset", "", "Built-in preset: baseline or strict")
	policyValidateCmd.Flags().StringVar(&validatePolicy, "policy", "", "Path to policy YAML file")
	policyExplainCmd.Flags().StringVar(&explainPreset, "preset", "", "Built-in preset: baseline or strict")
	policyExplainCmd.Flags().StringVar(&explainPolicy, "policy", "", "Path to policy YAML file")
	policyExplainCmd.Flags().BoolVar(&explainJSON, "json", false, "Output JSON instead of Markdown")
	policyCmd.AddCommand(policyValidateCmd)
	policyCmd.AddCommand(policyExplainCmd)
}

// GetPolicyCmd export
func GetPolicyCmd() *cobra.Command {
	return policyCmd
}

func runPolicyValidate(cmd *cobra.Command, args []string) error {
	config, _, err := resolvePolicy(validatePreset, validatePolicy)
	if err != nil {
		return err
	}

	eng, err := policy.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create policy engine: %w", err)
	}
	if err := eng.CompileAndValidate(config); err != nil {
		return err
	}

	fmt.Printf("%s✓ %s: %d rules compile%s\n", colorGreen, config.Name, len(config.Rules), colorReset)
	return nil
}

// ExplainOutput is the JSON output schema
type ExplainOutput struct {
	SchemaVersion string        `json:"schema_version"`
	Source        ExplainSource `json:"source"`
	GeneratedAt   string        `json:"generated_at"`
	Rules         []ExplainRule `json:"rules"`
}

// ExplainSource identifies where the policy came from
type ExplainSource struct {
	Type string `json:"type"` // "preset" or "file"
	Name string `json:"name"`
}

// ExplainRule is one rule with metadata
type ExplainRule struct {
	Name       string `json:"name"`
	Severity   string `json:"severity"`
	Expr       string `json:"expr"`
	FailureMsg string `json:"failure_msg"`
}

func runPolicyExplain(cmd *cobra.Command, args []string) error {
	config, source, err := resolvePolicy(explainPreset, explainPolicy)
	if err != nil {
		return err
	}

	if explainJSON {
		out := ExplainOutput{
			SchemaVersion: "1.0",
			Source:        source,
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		for _, r := range config.Rules {
			out.Rules = append(out.Rules, ExplainRule{
				Name:       r.Name,
				Severity:   string(r.Severity),
				Expr:       r.Expr,
				FailureMsg: r.FailureMsg,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal explain output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\nMode: %s\n\n", config.Name, config.Mode))
	for _, r := range config.Rules {
		sb.WriteString(fmt.Sprintf("## %s (%s)\n\n", r.Name, r.Severity))
		sb.WriteString(fmt.Sprintf("```cel\n%s\n```\n\n", r.Expr))
		if r.FailureMsg != "" {
			sb.WriteString(fmt.Sprintf("On failure: %s\n\n", r.FailureMsg))
		}
	}
	fmt.Print(sb.String())
	return nil
}

// resolvePolicy loads from preset or file; at most one may be given.
func resolvePolicy(preset, path string) (*models.PolicyConfig, ExplainSource, error) {
	if preset != "" && path != "" {
		return nil, ExplainSource{}, fmt.Errorf("cannot use both --preset and --policy; choose one")
	}
	if path != "" {
		config, err := loadPolicyFile(path)
		if err != nil {
			return nil, ExplainSource{}, err
		}
		return config, ExplainSource{Type: "file", Name: path}, nil
	}
	if preset == "" {
		preset = "baseline"
	}
	if p := policy.GetPreset(preset); p != nil {
		return p, ExplainSource{Type: "preset", Name: preset}, nil
	}
	return nil, ExplainSource{}, fmt.Errorf("unknown preset: %s (use 'baseline' or 'strict')", preset)
}

// loadPolicyFile parses a policy YAML
func loadPolicyFile(path string) (*models.PolicyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	var config models.PolicyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}
	if len(config.Rules) == 0 {
		return nil, fmt.Errorf("policy must have at least one rule")
	}
	return &config, nil
}

// runCompliance evaluates the --policy flag of eval against a sealed
// evaluation. Enforce mode turns error-severity failures into a
// non-zero exit; warn mode never does.
func runCompliance(ev *engine.Evaluation, receiptOpts *[]receipt.Option) error {
	config, source, err := resolvePolicyArg(evalPolicyFlag)
	if err != nil {
		return err
	}

	eng, err := policy.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create policy engine: %w", err)
	}

	results, err := eng.Evaluate(config, ev)
	if err != nil {
		return fmt.Errorf("policy evaluation failed: %w", err)
	}

	fmt.Printf("%s%sPolicy:%s %s\n", colorBold, colorYellow, colorReset, config.Name)

	var hits []receipt.RuleHit
	hasErrors := false
	hasWarnings := false
	for _, result := range results {
		if result.Passed {
			fmt.Printf("%s✓%s %s\n", colorGreen, colorReset, result.RuleName)
			continue
		}
		if result.Severity == models.PolicySeverityWarn {
			hasWarnings = true
			fmt.Printf("%s⚠%s %s: %s\n", colorYellow, colorReset, result.RuleName, result.FailureMsg)
			hits = append(hits, receipt.RuleHit{Name: result.RuleName, Severity: "warn"})
		} else {
			hasErrors = true
			fmt.Printf("%s✗%s %s: %s\n", colorRed, colorReset, result.RuleName, result.FailureMsg)
			hits = append(hits, receipt.RuleHit{Name: result.RuleName, Severity: "error"})
		}
	}

	status := "pass"
	switch {
	case hasErrors:
		status = "fail"
	case hasWarnings:
		status = "warn"
	}
	*receiptOpts = append(*receiptOpts, receipt.WithPolicy(source.Name, status, hits))

	if config.Mode == models.PolicyModeEnforce && hasErrors {
		return fmt.Errorf("policy check failed")
	}
	return nil
}

// resolvePolicyArg treats the eval --policy value as a preset name
// first, then as a file path.
func resolvePolicyArg(arg string) (*models.PolicyConfig, ExplainSource, error) {
	if p := policy.GetPreset(arg); p != nil {
		return p, ExplainSource{Type: "preset", Name: arg}, nil
	}
	config, err := loadPolicyFile(arg)
	if err != nil {
		return nil, ExplainSource{}, err
	}
	return config, ExplainSource{Type: "file", Name: arg}, nil
}
