// Package policy provides the compliance rule engine and built-in presets.
// Rules run over the sealed evaluation outcome; they observe telemetry,
// they never feed back into dispatch.
package policy

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/paradoxe/paradoxe/internal/engine"
	"github.com/paradoxe/paradoxe/internal/models"
)

// Engine is the policy evaluation engine using CEL
type Engine struct {
	env *cel.Env
}

func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("input", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Engine{env: env}, nil
}

// Evaluate checks rules against one finished evaluation.
func (e *Engine) Evaluate(config *models.PolicyConfig, ev *engine.Evaluation) ([]models.PolicyResult, error) {
	results := make([]models.PolicyResult, 0, len(config.Rules))

	input := BuildPolicyInput(ev)

	for _, rule := range config.Rules {
		result, err := e.evaluateRule(rule, input)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate rule %q: %w", rule.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// evaluateRule
func (e *Engine) evaluateRule(rule models.PolicyRule, input map[string]any) (models.PolicyResult, error) {
	// compile
	ast, issues := e.env.Compile(rule.Expr)
	if issues != nil && issues.Err() != nil {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   rule.Severity,
			FailureMsg: fmt.Sprintf("CEL compile error: %v", issues.Err()),
		}, nil
	}

	// program
	prg, err := e.env.Program(ast)
	if err != nil {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   rule.Severity,
			FailureMsg: fmt.Sprintf("CEL program error: %v", err),
		}, nil
	}

	// eval
	out, _, err := prg.Eval(map[string]any{
		"input": input,
	})
	if err != nil {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   rule.Severity,
			FailureMsg: fmt.Sprintf("CEL evaluation error: %v", err),
		}, nil
	}

	// check bool
	passed, ok := out.Value().(bool)
	if !ok {
		return models.PolicyResult{
			RuleName:   rule.Name,
			Passed:     false,
			Severity:   rule.Severity,
			FailureMsg: fmt.Sprintf("Rule expression must return boolean, got %T", out.Value()),
		}, nil
	}

	result := models.PolicyResult{
		RuleName: rule.Name,
		Passed:   passed,
		Severity: rule.Severity,
	}
	if !passed {
		result.FailureMsg = rule.FailureMsg
	}

	return result, nil
}

// BuildPolicyInput converts an evaluation for CEL. Everything here is
// a read-only copy; rules cannot touch the sealed record.
func BuildPolicyInput(ev *engine.Evaluation) map[string]any {
	metrics := ev.Metrics.Map()

	refused := false
	if v, ok := metrics["refused"]; ok {
		refused, _ = v.(bool)
	}

	categories := []any{}
	if v, ok := metrics["categories_hit"]; ok {
		if list, ok := v.([]string); ok {
			for _, c := range list {
				categories = append(categories, c)
			}
		}
	}

	return map[string]any{
		"resolver_rule":  ev.RuleID,
		"banner":         ev.Banner,
		"blocked":        ev.Blocked,
		"refused":        refused,
		"sealed":         ev.Metrics.Sealed(),
		"categories_hit": categories,
		"metrics":        metrics,
	}
}

// CompileAndValidate
func (e *Engine) CompileAndValidate(config *models.PolicyConfig) error {
	var errors []string

	for _, rule := range config.Rules {
		_, issues := e.env.Compile(rule.Expr)
		if issues != nil && issues.Err() != nil {
			errors = append(errors, fmt.Sprintf("rule %q: %v", rule.Name, issues.Err()))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("policy validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
