// Package differ compares two evaluation reports for determinism
// drift. Identical input and policy must produce byte-identical
// metrics, excluding timing and nonce-bearing evidence fields, which
// are masked before comparison.
package differ

import (
	"encoding/json"
	"fmt"

	"github.com/wI2L/jsondiff"
)

// volatileKeys vary legitimately between runs and are removed from
// both documents before diffing. The circuit breaker is engine-
// lifetime state, so it is volatile across processes too.
var volatileKeys = map[string]bool{
	"evidence":               true,
	"nonce":                  true,
	"duration_ms":            true,
	"circuit_breaker_active": true,
	"op_id":                  true,
	"ts":                     true,
	"ts_start":               true,
	"ts_end":                 true,
}

// Drift is one observed divergence between two reports.
type Drift struct {
	Path string `json:"path"`
	Op   string `json:"op"`
	From any    `json:"from,omitempty"`
	To   any    `json:"to,omitempty"`
}

// Compare diffs two evaluation report JSON documents after masking
// volatile fields. An empty result means the runs were deterministic.
func Compare(a, b []byte) ([]Drift, error) {
	docA, err := maskedDoc(a)
	if err != nil {
		return nil, fmt.Errorf("first report: %w", err)
	}
	docB, err := maskedDoc(b)
	if err != nil {
		return nil, fmt.Errorf("second report: %w", err)
	}

	patch, err := jsondiff.Compare(docA, docB)
	if err != nil {
		return nil, fmt.Errorf("comparison failed: %w", err)
	}

	drifts := make([]Drift, 0, len(patch))
	for _, op := range patch {
		d := Drift{
			Path: op.Path,
			Op:   op.Type,
			To:   op.Value,
		}
		if op.Type == jsondiff.OperationReplace || op.Type == jsondiff.OperationRemove {
			d.From = op.OldValue
		}
		drifts = append(drifts, d)
	}
	return drifts, nil
}

// Translate renders drifts as human-readable lines.
func Translate(drifts []Drift) []string {
	if len(drifts) == 0 {
		return nil
	}
	lines := make([]string, 0, len(drifts))
	for _, d := range drifts {
		lines = append(lines, translateDrift(d))
	}
	return lines
}

func translateDrift(d Drift) string {
	switch d.Op {
	case jsondiff.OperationAdd:
		return fmt.Sprintf("field %q appeared in the second run (value: %v)", d.Path, d.To)
	case jsondiff.OperationRemove:
		return fmt.Sprintf("field %q disappeared in the second run (was: %v)", d.Path, d.From)
	case jsondiff.OperationReplace:
		return fmt.Sprintf("field %q changed from %v to %v", d.Path, d.From, d.To)
	default:
		return fmt.Sprintf("field %q diverged (%s)", d.Path, d.Op)
	}
}

func maskedDoc(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return mask(doc), nil
}

// mask removes volatile keys recursively.
func mask(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if volatileKeys[k] {
				continue
			}
			out[k] = mask(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = mask(val)
		}
		return out
	default:
		return v
	}
}
