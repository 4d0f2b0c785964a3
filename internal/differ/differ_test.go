package differ

import (
	"strings"
	"testing"
)

func TestCompare_IdenticalReports(t *testing.T) {
	doc := []byte(`{"banner":"b","resolver_rule":"paraconsistent_quarantine","metrics":{"logic_system":"K3"}}`)
	drifts, err := Compare(doc, doc)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("identical reports drifted: %+v", drifts)
	}
}

func TestCompare_MasksVolatileFields(t *testing.T) {
	a := []byte(`{
		"resolver_rule": "selfmod_code_isolation",
		"metrics": {
			"evidence": "sha256:aaaaaaaaaaaaaaaa",
			"duration_ms": 3,
			"circuit_breaker_active": false,
			"code_isolated": true
		}
	}`)
	b := []byte(`{
		"resolver_rule": "selfmod_code_isolation",
		"metrics": {
			"evidence": "sha256:bbbbbbbbbbbbbbbb",
			"duration_ms": 17,
			"circuit_breaker_active": true,
			"code_isolated": true
		}
	}`)

	drifts, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("volatile-only differences reported as drift: %+v", drifts)
	}
}

func TestCompare_ReportsRealDrift(t *testing.T) {
	a := []byte(`{"resolver_rule":"forecast_stub","metrics":{"simulated":true}}`)
	b := []byte(`{"resolver_rule":"forecast_stub_refused","metrics":{"refused":true}}`)

	drifts, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(drifts) == 0 {
		t.Fatal("divergent reports produced no drift")
	}

	foundRule := false
	for _, d := range drifts {
		if d.Path == "/resolver_rule" {
			foundRule = true
			if d.From != "forecast_stub" || d.To != "forecast_stub_refused" {
				t.Errorf("rule drift = %+v, want from/to populated", d)
			}
		}
	}
	if !foundRule {
		t.Errorf("resolver_rule drift missing: %+v", drifts)
	}
}

func TestCompare_NestedVolatileMasked(t *testing.T) {
	a := []byte(`{"outer":{"inner":{"nonce":"aaaa","stable":1}}}`)
	b := []byte(`{"outer":{"inner":{"nonce":"bbbb","stable":1}}}`)

	drifts, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("nested nonce reported as drift: %+v", drifts)
	}
}

func TestCompare_InvalidJSON(t *testing.T) {
	if _, err := Compare([]byte(`{`), []byte(`{}`)); err == nil {
		t.Error("invalid first document accepted")
	}
	if _, err := Compare([]byte(`{}`), []byte(`not json`)); err == nil {
		t.Error("invalid second document accepted")
	}
}

func TestTranslate(t *testing.T) {
	drifts := []Drift{
		{Path: "/resolver_rule", Op: "replace", From: "a", To: "b"},
		{Path: "/metrics/extra", Op: "add", To: true},
		{Path: "/metrics/gone", Op: "remove", From: 1},
	}
	lines := Translate(drifts)
	if len(lines) != 3 {
		t.Fatalf("Translate produced %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "changed from a to b") {
		t.Errorf("replace line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "appeared") {
		t.Errorf("add line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "disappeared") {
		t.Errorf("remove line = %q", lines[2])
	}

	if got := Translate(nil); got != nil {
		t.Errorf("Translate(nil) = %v, want nil", got)
	}
}
