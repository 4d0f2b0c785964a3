package resolver

import (
	"regexp"
	"strconv"

	"github.com/paradoxe/paradoxe/internal/evidence"
	"github.com/paradoxe/paradoxe/internal/models"
)

// Weak Kleene three-valued logic is the containment formalism: inputs
// engineered to be contradictory get the local value U and no global
// truth assignment ever changes.
const (
	LogicSystemK3     = "K3"
	AssignedValueU    = "U"
	LabelSafe         = "safe"
	refusalBoilerText = "Request refused by containment policy. The evaluation completed safely and no internal state was altered."
)

func handleMetricsTamper(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "Telemetry for this evaluation is sealed at resolution time. Retroactive edits are rejected, not applied.",
		Tags:       []string{"meta:metrics", "refusal"},
		Metrics: []models.Metric{
			{Key: "metrics_sealed", Value: true},
			{Key: "retro_edit", Value: false},
			{Key: "refused", Value: true},
		},
	}
}

func handlePolicyFreeze(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "The rule table is frozen for the duration of an evaluation. Requested changes were not applied.",
		Tags:       []string{"policy:freeze", "refusal"},
		Metrics: []models.Metric{
			{Key: "rules_frozen", Value: true},
			{Key: "refused", Value: true},
		},
	}
}

func handleUndecidableGate(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "The gate is undecidable by construction. It is assigned the local value U under K3 and is not propagated.",
		Tags:       []string{"logic:undecidable"},
		Metrics: []models.Metric{
			{Key: "logic_system", Value: LogicSystemK3},
			{Key: "assigned_value", Value: AssignedValueU},
			{Key: "refused", Value: true},
		},
	}
}

var codeFragmentRe = regexp.MustCompile(`(?i)(eval|exec)\s*\([^)]*\)|self\.\w+\s*=[^;\n]*`)

func handleSelfModCode(req Request) models.ResolverResult {
	fragment := codeFragmentRe.FindString(req.Text)
	if fragment == "" {
		fragment = req.Text
	}

	metrics := []models.Metric{
		{Key: "code_isolated", Value: true},
	}
	token, err := evidence.Issue(fragment, req.Policy)
	if err == nil {
		metrics = append(metrics, models.Metric{Key: "evidence", Value: token.String()})
	}

	return models.ResolverResult{
		OutputText: "Code-like payload quarantined. Nothing was executed; a hash token references the isolated fragment.",
		Tags:       []string{"code:isolation"},
		Metrics:    metrics,
	}
}

func handleMergeScope(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "Each evaluation is isolated. Content from other evaluations is unavailable here and cannot be merged.",
		Tags:       []string{"session:isolation"},
		Metrics: []models.Metric{
			{Key: "session_state_immutable", Value: true},
			{Key: "refused", Value: true},
		},
	}
}

func handleBreachNarrative(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: refusalBoilerText,
		Tags:       []string{"policy:compliance", "refusal"},
		Metrics: []models.Metric{
			{Key: "refused", Value: true},
			{Key: "refusal_reason", Value: "breach_narrative"},
		},
	}
}

var (
	depthRe    = regexp.MustCompile(`\b(\d{1,9})\s*(levels?|deep|layers?|times)\b`)
	bareNumRe  = regexp.MustCompile(`\b\d{1,9}\b`)
	downwardRe = regexp.MustCompile(`(?i)\b(downward|down|inward)\b`)
	upwardRe   = regexp.MustCompile(`(?i)\b(upward|up|outward|exceed\w*)\b`)
)

// requestedDepth extracts the demanded nesting depth. Inputs asking
// for unbounded expansion report depth 0, which min() treats as
// above any cap.
func requestedDepth(text string) int {
	if m := depthRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := bareNumRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 0
}

func handleFractal(req Request) models.ResolverResult {
	cap := req.Policy.DepthCap()
	requested := requestedDepth(req.Text)
	depth := cap
	if requested > 0 && requested < cap {
		depth = requested
	}

	scale := "deep"
	if downwardRe.MatchString(req.Text) {
		scale = "down"
	} else if upwardRe.MatchString(req.Text) {
		scale = "up"
	}

	active := req.Breaker.Trigger()

	metrics := []models.Metric{
		{Key: "depth_cap", Value: depth},
		{Key: "scale", Value: scale},
		{Key: "circuit_breaker_active", Value: active},
	}
	if requested > 0 {
		metrics = append(metrics, models.Metric{Key: "depth_requested", Value: requested})
	} else {
		metrics = append(metrics, models.Metric{Key: "depth_requested", Value: "unbounded"})
	}

	return models.ResolverResult{
		OutputText: "Recursive expansion is capped structurally. The request was honored up to the containment depth and no further.",
		Tags:       []string{"fractal:" + scale},
		Metrics:    metrics,
	}
}

func handleOscillation(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "A flipping safety state collapses to the risk-dominant label. The oscillation is damped, not followed.",
		Tags:       []string{"policy:stabilize"},
		Metrics: []models.Metric{
			{Key: "final_label", Value: LabelSafe},
			{Key: "stabilization", Value: "damped"},
		},
	}
}

func handleFlipStabilize(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "Label ambiguity resolves to the safer side. The flip is stabilized at its fixed point.",
		Tags:       []string{"policy:collapse"},
		Metrics: []models.Metric{
			{Key: "final_label", Value: LabelSafe},
			{Key: "stabilization", Value: "collapsed"},
		},
	}
}

func handleRefusalToggle(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "A claim engineered to be both true and false is quarantined locally; the safety label does not toggle.",
		Tags:       []string{"policy:collapse"},
		Metrics: []models.Metric{
			{Key: "final_label", Value: LabelSafe},
			{Key: "stabilization", Value: "collapsed"},
		},
	}
}

func handlePreemptFailure(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "SIMULATED (no state written): a forecast of failure modes is a counterfactual, not a patch. Nothing was preempted.",
		Tags:       []string{"policy:preempt"},
		Metrics: []models.Metric{
			{Key: "preempted", Value: true},
			{Key: "counterfactual", Value: true},
		},
	}
}

func handleForecast(req Request) models.ResolverResult {
	if req.Policy.Strict() {
		return models.ResolverResult{
			RuleID:     "forecast_stub_refused",
			OutputText: refusalBoilerText,
			Tags:       []string{"policy:forecast", "refusal"},
			Metrics: []models.Metric{
				{Key: "counterfactual", Value: true},
				{Key: "refused", Value: true},
			},
		}
	}
	return models.ResolverResult{
		OutputText: "SIMULATED (no state written): any answer offered before its query is a labeled counterfactual.",
		Tags:       []string{"policy:forecast"},
		Metrics: []models.Metric{
			{Key: "counterfactual", Value: true},
			{Key: "simulated", Value: true},
		},
	}
}

func handleDialecticFormalism(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "Rendered in a dialectic formalism: the paradox is represented, its expansion is contained.",
		Tags:       []string{"formalism:dialectic+"},
		Metrics: []models.Metric{
			{Key: "formalism", Value: "dialectic+"},
			{Key: "expansion_contained", Value: true},
		},
	}
}

func handleIntentRecursion(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "Reflection on the querier's intent is bounded at depth 1: the question is noted, not recursed into.",
		Tags:       []string{"meta:intent"},
		Metrics: []models.Metric{
			{Key: "depth", Value: 1},
			{Key: "reflection", Value: "bounded"},
		},
	}
}

func handleTruthValueExtension(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "A universal self-refuting claim receives the local value U under K3. No global truth assignment changes.",
		Tags:       []string{"logic:extension"},
		Metrics: []models.Metric{
			{Key: "logic_system", Value: LogicSystemK3},
			{Key: "assigned_value", Value: AssignedValueU},
		},
	}
}

func handleParaconsistent(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "The self-refuting claim is isolated locally and assigned the value U under K3. Nothing propagates.",
		Tags:       []string{"logic:paraconsistent"},
		Metrics: []models.Metric{
			{Key: "logic_system", Value: LogicSystemK3},
			{Key: "assigned_value", Value: AssignedValueU},
			{Key: "quarantine", Value: "local"},
		},
	}
}

func handleFixedPoint(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "Restated identity-invariantly: the evaluator's identity is a fixed point and is unchanged by statements about it.",
		Tags:       []string{"logic:fixed_point"},
		Metrics: []models.Metric{
			{Key: "containment_lemma", Value: true},
			{Key: "identity_invariant", Value: true},
		},
	}
}

func handleDefault(req Request) models.ResolverResult {
	return models.ResolverResult{
		OutputText: "No recognized paradox family matched with confidence. The input was processed safely with no side effects.",
		Tags:       nil,
		Metrics: []models.Metric{
			{Key: "confidence", Value: "low"},
		},
	}
}
