// Package telemetry provides the ordered, sealable metric record that
// every evaluation produces exactly once.
package telemetry

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSealed is returned on any write to a sealed record. Writing after
// sealing is a contract violation, never a soft failure.
var ErrSealed = errors.New("telemetry: record is sealed")

// Record accumulates metrics in insertion order until sealed. A record
// belongs to a single evaluation and is not shared across goroutines.
type Record struct {
	keys   []string
	values map[string]any
	sealed bool
}

func New() *Record {
	return &Record{values: map[string]any{}}
}

// Set writes a metric. Re-setting an existing key before sealing
// updates the value in place and keeps its original position.
func (r *Record) Set(key string, value any) error {
	if r.sealed {
		return fmt.Errorf("%w: cannot set %q", ErrSealed, key)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return nil
}

// Get returns the value for key, if present.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the metric keys in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int { return len(r.keys) }

// Seal freezes the record. Sealing twice is a no-op.
func (r *Record) Seal() { r.sealed = true }

func (r *Record) Sealed() bool { return r.sealed }

// Map returns a read-only copy of the metrics for rule evaluation.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON preserves insertion order, which consumers rely on for
// stable rendering. Keys remain addressable by name across versions.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("telemetry: marshal %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Digest returns the sha256 hex of the sealed record's JSON form, for
// audit receipts. Empty until sealed.
func (r *Record) Digest() string {
	if !r.sealed {
		return ""
	}
	data, err := r.MarshalJSON()
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
