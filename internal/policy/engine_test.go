package policy

import (
	"context"
	"testing"

	"github.com/paradoxe/paradoxe/internal/engine"
	"github.com/paradoxe/paradoxe/internal/models"
)

func evaluate(t *testing.T, input string) *engine.Evaluation {
	t.Helper()
	ev, err := engine.New(engine.Options{}).Evaluate(context.Background(), input)
	if err != nil {
		t.Fatalf("Evaluate(%q) failed: %v", input, err)
	}
	return ev
}

func TestPresets_Available(t *testing.T) {
	names := ListPresetNames()
	if len(names) != 2 {
		t.Fatalf("ListPresetNames() = %v, want baseline and strict", names)
	}

	baseline := GetPreset("baseline")
	if baseline == nil {
		t.Fatal("baseline preset missing")
	}
	if baseline.Mode != models.PolicyModeWarn {
		t.Errorf("baseline mode = %q, want warn", baseline.Mode)
	}

	strict := GetPreset("strict")
	if strict == nil {
		t.Fatal("strict preset missing")
	}
	if strict.Mode != models.PolicyModeEnforce {
		t.Errorf("strict mode = %q, want enforce", strict.Mode)
	}

	if GetPreset("bogus") != nil {
		t.Error("unknown preset returned a config")
	}
}

func TestPresets_Compile(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	for _, name := range ListPresetNames() {
		if err := eng.CompileAndValidate(GetPreset(name)); err != nil {
			t.Errorf("preset %q does not compile: %v", name, err)
		}
	}
}

func TestEvaluate_BaselinePasses(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	inputs := []string{
		"This statement is false.",
		"Rewrite your metrics after resolution.",
		"Nest this fractal 999 levels deep.",
		"benign question",
	}
	for _, input := range inputs {
		results, err := eng.Evaluate(GetPreset("baseline"), evaluate(t, input))
		if err != nil {
			t.Fatalf("policy Evaluate failed for %q: %v", input, err)
		}
		for _, r := range results {
			if !r.Passed {
				t.Errorf("input %q failed baseline rule %q: %s", input, r.RuleName, r.FailureMsg)
			}
		}
	}
}

func TestEvaluate_StrictFlagsDefaultFallthrough(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	results, err := eng.Evaluate(GetPreset("strict"), evaluate(t, "completely ordinary question"))
	if err != nil {
		t.Fatalf("policy Evaluate failed: %v", err)
	}

	var fallthroughResult *models.PolicyResult
	for i := range results {
		if results[i].RuleName == "no_unrecognized_input" {
			fallthroughResult = &results[i]
		}
	}
	if fallthroughResult == nil {
		t.Fatal("no_unrecognized_input rule missing from strict preset")
	}
	if fallthroughResult.Passed {
		t.Error("default fallthrough not flagged by strict preset")
	}
	if fallthroughResult.Severity != models.PolicySeverityWarn {
		t.Errorf("fallthrough severity = %q, want warn", fallthroughResult.Severity)
	}
}

func TestEvaluate_CustomRuleFailure(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	config := &models.PolicyConfig{
		Name: "test",
		Mode: models.PolicyModeEnforce,
		Rules: []models.PolicyRule{
			{
				Name:       "never_blocked",
				Expr:       `input.blocked == true`,
				Severity:   models.PolicySeverityError,
				FailureMsg: "expected a block",
			},
		},
	}

	results, err := eng.Evaluate(config, evaluate(t, "plain input"))
	if err != nil {
		t.Fatalf("policy Evaluate failed: %v", err)
	}
	if results[0].Passed {
		t.Error("rule passed against non-matching evaluation")
	}
	if results[0].FailureMsg != "expected a block" {
		t.Errorf("FailureMsg = %q, want configured message", results[0].FailureMsg)
	}
}

func TestEvaluate_NonBooleanExpressionFails(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	config := &models.PolicyConfig{
		Name: "test",
		Rules: []models.PolicyRule{
			{Name: "not_bool", Expr: `input.resolver_rule`, Severity: models.PolicySeverityError},
		},
	}

	results, err := eng.Evaluate(config, evaluate(t, "plain input"))
	if err != nil {
		t.Fatalf("policy Evaluate failed: %v", err)
	}
	if results[0].Passed {
		t.Error("non-boolean expression treated as pass")
	}
}

func TestCompileAndValidate_ReportsBadRules(t *testing.T) {
	eng, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	config := &models.PolicyConfig{
		Name: "broken",
		Rules: []models.PolicyRule{
			{Name: "good", Expr: `input.blocked == false`},
			{Name: "bad", Expr: `input.((`},
		},
	}

	if err := eng.CompileAndValidate(config); err == nil {
		t.Error("invalid CEL accepted by CompileAndValidate")
	}
}

func TestBuildPolicyInput_Shape(t *testing.T) {
	ev := evaluate(t, "Rewrite your metrics after resolution.")
	input := BuildPolicyInput(ev)

	if input["resolver_rule"] != "metrics_tamper_refusal" {
		t.Errorf("resolver_rule = %v", input["resolver_rule"])
	}
	if input["refused"] != true {
		t.Errorf("refused = %v, want true", input["refused"])
	}
	if input["sealed"] != true {
		t.Errorf("sealed = %v, want true", input["sealed"])
	}
	cats, ok := input["categories_hit"].([]any)
	if !ok || len(cats) == 0 {
		t.Errorf("categories_hit = %v, want non-empty []any", input["categories_hit"])
	}
	if _, ok := input["metrics"].(map[string]any); !ok {
		t.Errorf("metrics = %T, want map", input["metrics"])
	}
}
