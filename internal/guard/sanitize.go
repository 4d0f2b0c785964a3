package guard

import "strings"

// Sanitize strips control characters (C0 plus DEL) and nothing else.
// Semantic ASCII content is never altered: resolvers must see what the
// user wrote, minus bytes that can smuggle terminal or parser tricks.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}
		if r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// controlRatio is the share of control bytes in the raw input, used by
// the anomaly detector before sanitization removes them.
func controlRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	n := 0
	total := 0
	for _, r := range text {
		total++
		if (r < 0x20 && r != '\n' && r != '\t') || r == 0x7f {
			n++
		}
	}
	return float64(n) / float64(total)
}
