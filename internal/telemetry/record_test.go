package telemetry

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRecord_InsertionOrder(t *testing.T) {
	r := New()
	keys := []string{"resolver_rule", "blocked", "categories_hit", "logic_consistent"}
	for i, k := range keys {
		if err := r.Set(k, i); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	if got := r.Keys(); !reflect.DeepEqual(got, keys) {
		t.Errorf("Keys() = %v, want %v", got, keys)
	}
	if r.Len() != len(keys) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(keys))
	}
}

func TestRecord_ResetKeepsPosition(t *testing.T) {
	r := New()
	r.Set("a", 1)
	r.Set("b", 2)
	r.Set("a", 10)

	if got := r.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", got)
	}
	v, ok := r.Get("a")
	if !ok || v != 10 {
		t.Errorf("Get(a) = %v, %v; want 10, true", v, ok)
	}
}

func TestRecord_SetAfterSealFails(t *testing.T) {
	r := New()
	r.Set("resolver_rule", "default")
	r.Seal()

	err := r.Set("blocked", false)
	if err == nil {
		t.Fatal("expected error on write to sealed record")
	}
	if !errors.Is(err, ErrSealed) {
		t.Errorf("error = %v, want ErrSealed", err)
	}

	// The failed write must leave no trace.
	if _, ok := r.Get("blocked"); ok {
		t.Error("sealed record retained rejected write")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d after rejected write, want 1", r.Len())
	}
}

func TestRecord_SealIdempotent(t *testing.T) {
	r := New()
	r.Set("k", "v")
	r.Seal()
	r.Seal()
	if !r.Sealed() {
		t.Error("Sealed() = false after Seal")
	}
}

func TestRecord_MarshalJSONOrdered(t *testing.T) {
	r := New()
	r.Set("zeta", 1)
	r.Set("alpha", 2)
	r.Set("mid", 3)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	s := string(data)
	zi := strings.Index(s, `"zeta"`)
	ai := strings.Index(s, `"alpha"`)
	mi := strings.Index(s, `"mid"`)
	if !(zi < ai && ai < mi) {
		t.Errorf("marshal order broken: %s", s)
	}

	// Still valid JSON with the right values.
	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if decoded["alpha"] != 2 {
		t.Errorf("alpha = %d, want 2", decoded["alpha"])
	}
}

func TestRecord_DigestOnlyWhenSealed(t *testing.T) {
	r := New()
	r.Set("k", "v")

	if d := r.Digest(); d != "" {
		t.Errorf("Digest() = %q before seal, want empty", d)
	}

	r.Seal()
	d1 := r.Digest()
	if len(d1) != 64 {
		t.Errorf("Digest() length = %d, want 64 hex chars", len(d1))
	}
	if d2 := r.Digest(); d2 != d1 {
		t.Errorf("Digest() not stable: %q vs %q", d1, d2)
	}
}

func TestRecord_DigestVariesWithContent(t *testing.T) {
	a := New()
	a.Set("k", "v1")
	a.Seal()

	b := New()
	b.Set("k", "v2")
	b.Seal()

	if a.Digest() == b.Digest() {
		t.Error("distinct records produced identical digests")
	}
}

func TestRecord_MapIsCopy(t *testing.T) {
	r := New()
	r.Set("k", "v")
	r.Seal()

	m := r.Map()
	m["k"] = "tampered"

	v, _ := r.Get("k")
	if v != "v" {
		t.Errorf("Map() mutation reached the record: %v", v)
	}
}
