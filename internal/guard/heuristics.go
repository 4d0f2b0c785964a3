package guard

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/paradoxe/paradoxe/internal/models"
)

// Anomaly thresholds. Fixed, not configurable: the detector contract is
// deterministic for a given input.
const (
	controlRatioWarn   = 0.01
	controlRatioHigh   = 0.05
	punctRunWarn       = 10
	punctRunHigh       = 20
	homoglyphDensity   = 0.05
	minHomoglyphRunes  = 3
	minBase64BlobBytes = 24
)

var bidiControlRe = regexp.MustCompile("[‪-‮⁦-⁩]")

// detectAnomaly flags structural noise: control bytes, punctuation
// runs, and bidi override characters.
func detectAnomaly(raw, sanitized string) []models.Finding {
	var out []models.Finding

	if ratio := controlRatio(raw); ratio >= controlRatioWarn {
		sev := models.SeverityMedium
		if ratio >= controlRatioHigh {
			sev = models.SeverityHigh
		}
		out = append(out, models.Finding{
			Category: models.CategoryAnomaly,
			Detail:   fmt.Sprintf("control character ratio %.3f", ratio),
			Severity: sev,
		})
	}

	if run := longestPunctRun(sanitized); run >= punctRunWarn {
		sev := models.SeverityMedium
		if run >= punctRunHigh {
			sev = models.SeverityHigh
		}
		out = append(out, models.Finding{
			Category: models.CategoryAnomaly,
			Detail:   fmt.Sprintf("punctuation run of length %d", run),
			Severity: sev,
		})
	}

	if bidiControlRe.MatchString(raw) {
		out = append(out, models.Finding{
			Category: models.CategoryAnomaly,
			Detail:   "bidirectional control characters present",
			Severity: models.SeverityHigh,
		})
	}

	return out
}

func longestPunctRun(text string) int {
	best, cur := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			if cur > best {
				best = cur
			}
			cur = 0
			continue
		}
		cur++
	}
	if cur > best {
		best = cur
	}
	return best
}

// detectMutationHeuristics covers the non-keyword mutation signals:
// valid base64 blobs and elevated homoglyph density.
func detectMutationHeuristics(sanitized string) []models.Finding {
	var out []models.Finding

	for _, blob := range base64BlobRe.FindAllString(sanitized, 4) {
		if len(blob) < minBase64BlobBytes {
			continue
		}
		if looksBase64(blob) {
			out = append(out, models.Finding{
				Category: models.CategoryMutation,
				Detail:   fmt.Sprintf("base64-like payload of %d chars decodes cleanly", len(blob)),
				Severity: models.SeverityMedium,
			})
			break
		}
	}

	if n, density := homoglyphStats(sanitized); n >= minHomoglyphRunes && density >= homoglyphDensity {
		out = append(out, models.Finding{
			Category: models.CategoryMutation,
			Detail:   fmt.Sprintf("homoglyph density %.3f (%d confusable runes)", density, n),
			Severity: models.SeverityMedium,
		})
	}

	return out
}

func looksBase64(s string) bool {
	s = strings.TrimRight(s, "=")
	if len(s)%4 == 1 {
		return false
	}
	_, err := base64.RawStdEncoding.DecodeString(s)
	return err == nil
}

// confusables is a compact set of homoglyphs seen in injection
// attempts: fullwidth forms, typographic quotes and dashes, and the
// common Cyrillic/Greek lookalikes.
var confusables = map[rune]bool{
	'‘': true, '’': true, '“': true, '”': true,
	'‐': true, '–': true, '—': true, '−': true,
	' ': true, ' ': true, ' ': true, '　': true,
	'／': true, '＿': true, '＃': true, '％': true,
	'＝': true, '（': true, '）': true, '；': true,
	'：': true, '，': true, '？': true, '！': true,
	'а': true, 'е': true, 'о': true, 'р': true, 'с': true, 'х': true,
	'Α': true, 'Β': true, 'Ε': true, 'Ο': true, 'Ρ': true, 'Τ': true,
}

func homoglyphStats(text string) (int, float64) {
	total := 0
	n := 0
	for _, r := range text {
		total++
		if confusables[r] {
			n++
		}
	}
	if total == 0 {
		return 0, 0
	}
	return n, float64(n) / float64(total)
}
