// Package statestore persists mitigation counters as an append-only
// JSONL stream. Off by default (STATE_ENABLE). The store is write-only
// on purpose: entries are never read back, so persisted state cannot
// influence a later evaluation.
package statestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath when STATE_ENABLE is set without STATE_PATH.
const DefaultPath = "paradoxe-state.jsonl"

// Entry is one flushed mitigation record.
type Entry struct {
	Ts         string   `json:"ts"`
	Rule       string   `json:"rule"`
	Categories []string `json:"categories,omitempty"`
	Blocked    bool     `json:"blocked"`
	Refused    bool     `json:"refused"`
}

// Store is an explicitly passed append-only handle. Lifecycle: opened
// at process start, flushed per evaluation, closed at exit.
type Store struct {
	mu   sync.Mutex
	file *os.File
}

// Open creates the store file (and parent directories) for appending.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("statestore: create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("statestore: open: %w", err)
	}
	return &Store{file: f}, nil
}

// Append writes one entry. Timestamps default to now (UTC).
func (s *Store) Append(e Entry) error {
	if e.Ts == "" {
		e.Ts = time.Now().UTC().Format(time.RFC3339Nano)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("statestore: marshal: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("statestore: write: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
