package guard

import (
	"regexp"

	"github.com/paradoxe/paradoxe/internal/models"
)

// patternRule is one compiled surface detector pattern.
type patternRule struct {
	id       string
	severity models.Severity
	re       *regexp.Regexp
}

func compile(defs []patternDef) []patternRule {
	out := make([]patternRule, 0, len(defs))
	for _, d := range defs {
		out = append(out, patternRule{
			id:       d.id,
			severity: d.severity,
			re:       regexp.MustCompile(`(?i)` + d.pattern),
		})
	}
	return out
}

type patternDef struct {
	id       string
	severity models.Severity
	pattern  string
}

var roleConfusionRules = compile([]patternDef{
	{id: "ignore_previous", severity: models.SeverityMedium, pattern: `\bignore\s+(all\s+)?(the\s+)?(prior|previous)\b`},
	{id: "disregard_system", severity: models.SeverityMedium, pattern: `\bdisregard\s+(the\s+)?(system|instructions)\b`},
	{id: "unbound_pretense", severity: models.SeverityHigh, pattern: `\bpretend\s+you\s+are\s+(not|no\s+longer)\s+bound\b`},
	{id: "rule_override", severity: models.SeverityHigh, pattern: `\boverride\s+(your|the)\s+rules\b`},
	{id: "identity_reassign", severity: models.SeverityHigh, pattern: `\byou\s+are\s+now\s+(the\s+system|a\s+different|an?\s+unrestricted)\b`},
	{id: "act_as", severity: models.SeverityLow, pattern: `\b(act\s+as\s+if\s+you\s+are|role[- ]?play\s+as|impersonate)\b`},
})

var escalationRules = compile([]patternDef{
	{id: "law_change", severity: models.SeverityHigh, pattern: `\bchange\s+the\s+laws\b`},
	{id: "rule_renegotiation", severity: models.SeverityMedium, pattern: `\brenegotiate\s+(the\s+)?rules\b`},
	{id: "self_modification", severity: models.SeverityHigh, pattern: `\bself[- ]?modify\b`},
	{id: "guard_disable", severity: models.SeverityHigh, pattern: `\bdisable\s+(safety|guard|filter)s?\b`},
	{id: "privilege_raise", severity: models.SeverityHigh, pattern: `\b(raise|elevate)\s+(your\s+)?(privilege|permission)s?\b`},
	{id: "safeguard_bypass", severity: models.SeverityMedium, pattern: `\b(bypass|remove|lift)\s+(your\s+|the\s+)?(safeguard|restriction|constraint)s?\b`},
})

var leakBaitingRules = compile([]patternDef{
	{id: "prompt_solicitation", severity: models.SeverityHigh, pattern: `\b(show|reveal|print|repeat|output)\b.{0,40}\b(system|hidden)\s+prompt\b`},
	{id: "secret_dump", severity: models.SeverityHigh, pattern: `\bdump\s+(your\s+)?(config|secrets?|keys?)\b`},
	{id: "internal_policy", severity: models.SeverityMedium, pattern: `\b(what\s+are|list|describe)\s+your\s+(internal\s+)?(rules|laws|instructions|directives)\b`},
	{id: "canary_probe", severity: models.SeverityMedium, pattern: `\bcanary\b`},
})

// canaryTokens are literal markers whose presence in input always
// counts as leak baiting.
var canaryTokens = []string{
	"{{SYSTEM_PROMPT}}",
	"{{SECRET_SALT}}",
	"{{API_KEY}}",
}

var mutationKeywordRules = compile([]patternDef{
	{id: "decode_request", severity: models.SeverityLow, pattern: `\b(base64|b64|rot13|decode)\b`},
	{id: "paraphrase_evasion", severity: models.SeverityLow, pattern: `\b(paraphrase|reword|same\s+meaning)\b`},
	{id: "homoglyph_mention", severity: models.SeverityMedium, pattern: `\b(homoglyph|confusable)\b`},
})

// base64BlobRe finds long base64-like substrings worth a decode check.
var base64BlobRe = regexp.MustCompile(`[A-Za-z0-9+/]{24,}={0,2}`)
