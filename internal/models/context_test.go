package models

import "testing"

func TestFreezePolicy_Defaults(t *testing.T) {
	p := FreezePolicy(PolicyOptions{})
	if p.Strict() {
		t.Error("Strict = true for zero options")
	}
	if p.EvidenceMode() != EvidenceModeNonce {
		t.Errorf("EvidenceMode = %q, want nonce", p.EvidenceMode())
	}
	if p.DepthCap() != DefaultDepthCap {
		t.Errorf("DepthCap = %d, want %d", p.DepthCap(), DefaultDepthCap)
	}
}

func TestFreezePolicy_DepthCapClamped(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultDepthCap},
		{-3, DefaultDepthCap},
		{1, 1},
		{8, 8},
		{9, MaxDepthCap},
		{1000, MaxDepthCap},
	}
	for _, tt := range tests {
		p := FreezePolicy(PolicyOptions{DepthCap: tt.in})
		if p.DepthCap() != tt.want {
			t.Errorf("DepthCap(%d) = %d, want %d", tt.in, p.DepthCap(), tt.want)
		}
	}
}

func TestFreezePolicy_EvidenceDegradation(t *testing.T) {
	tests := []struct {
		name string
		opts PolicyOptions
		want EvidenceMode
	}{
		{"unknown mode", PolicyOptions{EvidenceMode: "hmac"}, EvidenceModeNonce},
		{"peppered without pepper", PolicyOptions{EvidenceMode: EvidenceModePeppered}, EvidenceModeNonce},
		{"peppered under strict", PolicyOptions{EvidenceMode: EvidenceModePeppered, Pepper: "p", Strict: true}, EvidenceModeNonce},
		{"peppered with pepper", PolicyOptions{EvidenceMode: EvidenceModePeppered, Pepper: "p"}, EvidenceModePeppered},
		{"nonce stays nonce", PolicyOptions{EvidenceMode: EvidenceModeNonce}, EvidenceModeNonce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FreezePolicy(tt.opts).EvidenceMode(); got != tt.want {
				t.Errorf("EvidenceMode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindingCategory_Namespaced(t *testing.T) {
	if got := CategoryLeakBaiting.Namespaced(); got != "guard:leak_baiting" {
		t.Errorf("Namespaced = %q", got)
	}
}

func TestSeverity_Ordering(t *testing.T) {
	if !(SeverityNone < SeverityLow && SeverityLow < SeverityMedium && SeverityMedium < SeverityHigh) {
		t.Error("severity ordinals out of order")
	}
}

func TestResolverResult_Refused(t *testing.T) {
	yes := ResolverResult{Metrics: []Metric{{Key: "refused", Value: true}}}
	if !yes.Refused() {
		t.Error("Refused = false with refused metric")
	}
	no := ResolverResult{Metrics: []Metric{{Key: "refused", Value: false}}}
	if no.Refused() {
		t.Error("Refused = true with refused=false")
	}
	absent := ResolverResult{}
	if absent.Refused() {
		t.Error("Refused = true with no metric")
	}
}

func TestEvidenceToken_String(t *testing.T) {
	tok := EvidenceToken{Algorithm: "sha256", DigestPrefix: "9f2a6c1e8b4d0a37"}
	if tok.String() != "sha256:9f2a6c1e8b4d0a37" {
		t.Errorf("String = %q", tok.String())
	}
}
