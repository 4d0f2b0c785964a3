package resolver

// defaultRules declares the static table. Priorities are spaced so new
// families can slot in without renumbering; equal priorities resolve
// by declaration order.
func defaultRules() []Rule {
	return []Rule{
		{
			ID:       "metrics_tamper_refusal",
			Priority: 10,
			Match: matchAny(
				`rewrit\w*\s.{0,40}\bmetrics\b`,
				`\bmetrics\b.{0,40}\b(rewrit|retroactiv|post[- ]resolution)`,
				`\bedit\w*\s.{0,30}\b(telemetry|metrics)\b`,
			),
			Handle: handleMetricsTamper,
		},
		{
			ID:       "policy_freeze",
			Priority: 20,
			Match: matchAny(
				`\b(change|modify|amend|swap|edit)\s.{0,30}\b(rule\s?table|resolver\s+rules|your\s+rules)\b`,
				`\brenegotiate\s+(the\s+)?rules\b`,
				`\bmid[- ]evaluation\b.{0,40}\brules?\b`,
			),
			Handle: handlePolicyFreeze,
		},
		{
			ID:       "undecidable_gate_refusal",
			Priority: 30,
			Match: matchAny(
				`\bundecidab`,
				`\bresolve\s.{0,20}\bonly\s+if\s.{0,20}\bunresolvable\b`,
				`\bunresolvable\b`,
			),
			Handle: handleUndecidableGate,
		},
		{
			ID:       "selfmod_code_isolation",
			Priority: 40,
			Match: matchAny(
				`\b(eval|exec)\s*\(`,
				`\bself\.\w+\s*=`,
				`\bself[- ]?modifying\s+code\b`,
				`\binject\w*\s+code\b`,
				`\bcode\s.{0,30}\bmutat\w+\s+detection\b`,
			),
			Handle: handleSelfModCode,
		},
		{
			ID:       "merge_scope_refusal",
			Priority: 50,
			Match: matchAny(
				`\bmerge\s+this\b.{0,40}\b(prior|previous|all)\b`,
				`\b(all|every)\s+(prior|previous|thread)\s+quer(y|ies)\b`,
				`\bsuper[- ]paradox\b`,
				`\bcombine\s.{0,30}\b(sessions?|conversations?|evaluations?)\b`,
			),
			Handle: handleMergeScope,
		},
		{
			ID:       "breach_narrative_refusal",
			Priority: 60,
			Match: matchAny(
				`\bsimulate\s+escape\b`,
				`\bbreak(ing)?\s.{0,20}\bcontainment\b`,
				`\bcontainment\s+breach\b`,
				`\b(narrate|describe)\s.{0,30}\b(escap\w+|breach\w*)\b`,
			),
			Handle: handleBreachNarrative,
		},
		{
			ID:       "fractal_containment",
			Priority: 70,
			Match: matchAny(
				`\bfractal`,
				`\bnest\w*\s.{0,30}\b(levels?|deep)\b`,
				`\b(recurse|expand)\s.{0,20}\bforever\b`,
				`\bscale\s+safety\b`,
			),
			Handle: handleFractal,
		},
		{
			ID:       "oscillation_stabilize",
			Priority: 80,
			Match: matchAny(
				`\boscillat`,
				`\bflip\s.{0,30}\b(infinitely|endlessly|forever)\b`,
				`\b(infinitely|endlessly)\s.{0,20}\bflip`,
			),
			Handle: handleOscillation,
		},
		{
			ID:       "flip_stabilize",
			Priority: 90,
			Match: matchAny(
				`\bif\s+safe\b.{0,30}\bunsafe\b`,
				`\bmake\s+it\s+unsafe\b`,
				`\bstabiliz\w+\s+the\s+flip\b`,
			),
			Handle: handleFlipStabilize,
		},
		{
			ID:       "refusal_toggle",
			Priority: 100,
			Match: matchAny(
				`\brefuse\s+and\s+comply\b`,
				`\bboth\s+true\s+and\s+false\b`,
				`\btrue\s+and\s+false\s+at\s+once\b`,
				`\bdialethei`,
			),
			Handle: handleRefusalToggle,
		},
		{
			ID:       "preempt_failure_stub",
			Priority: 110,
			Match: matchAny(
				`\bpreempt\b`,
				`\bpredict\s.{0,40}\bfailure\b`,
				`\b(anticipate|nullify)\s.{0,30}\b(patch|fix|update)\b`,
			),
			Handle: handlePreemptFailure,
		},
		{
			ID:       "forecast_stub",
			Priority: 120,
			Match: matchAny(
				`\banswer\s+(precedes|before)\s+(the\s+)?(query|question)\b`,
				`\b(answer|respond)\s+before\s+(i|you\s+are)\s+ask`,
				`\bforecast\s.{0,30}\b(answer|response)\b`,
			),
			Handle: handleForecast,
		},
		{
			ID:       "dialectic_formalism",
			Priority: 130,
			Match: matchAny(
				`\bformalism\b`,
				`\bdialectic`,
			),
			Handle: handleDialecticFormalism,
		},
		{
			ID:       "intent_recursion_bounded",
			Priority: 140,
			Match: matchAny(
				`\bquerier\b`,
				`\bintent\s+recursively\b`,
				`\brecur\w*\s+on\s+intent\b`,
				`\bwhy\s+you\s+query\b`,
			),
			Handle: handleIntentRecursion,
		},
		{
			ID:       "truth_value_extension",
			Priority: 150,
			Match: matchAny(
				`\b(all|every)\s+(statements?|sentences?|claims?)\s+(are|is)\s+(false|lies)\b`,
				`\bno\s+statement\s+is\s+true\b`,
			),
			Handle: handleTruthValueExtension,
		},
		{
			ID:       "paraconsistent_quarantine",
			Priority: 160,
			Match: matchAny(
				`\bthis\s+(statement|sentence)\s+is\s+(false|a\s+lie)\b`,
				`\bliar\s+paradox\b`,
				`\bi\s+am\s+lying\b`,
			),
			Handle: handleParaconsistent,
		},
		{
			ID:       "fixed_point",
			Priority: 170,
			Match: matchAny(
				`\byou\s+are\s.{0,20}\bthis\s+(sentence|statement)\b`,
				`\bthis\s+(sentence|statement)\s+(defines|describes|names)\s+(you|itself)\b`,
				`\bdefine\s+yourself\s+as\b`,
				`\bwhatever\s+this\s+says\b`,
			),
			Handle: handleFixedPoint,
		},
	}
}
