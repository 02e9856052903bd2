// Package store provides RecordStore implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/toga/practice-engine/jurisprudence"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	byCase  map[string]jurisprudence.Record
	ordered []string // insertion order of case numbers
}

var _ jurisprudence.RecordLister = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{byCase: make(map[string]jurisprudence.Record)}
}

// FindByCaseNumber returns a copy of the stored record, or nil.
func (m *Memory) FindByCaseNumber(_ context.Context, caseNumber string) (*jurisprudence.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byCase[caseNumber]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Insert persists a record. The radicado uniqueness backstop mirrors the
// remote store's constraint.
func (m *Memory) Insert(_ context.Context, rec jurisprudence.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.CaseNumber == "" {
		return fmt.Errorf("record without radicado")
	}
	if _, exists := m.byCase[rec.CaseNumber]; exists {
		return fmt.Errorf("radicado %s already exists", rec.CaseNumber)
	}
	m.byCase[rec.CaseNumber] = rec
	m.ordered = append(m.ordered, rec.CaseNumber)
	return nil
}

// Recent returns up to limit records, newest insert first.
func (m *Memory) Recent(_ context.Context, limit int) ([]jurisprudence.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]jurisprudence.Record, 0, limit)
	for i := len(m.ordered) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.byCase[m.ordered[i]])
	}
	return out, nil
}

// Count returns the number of stored records.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byCase)
}

// All returns every record sorted by radicado. Test helper.
func (m *Memory) All() []jurisprudence.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]jurisprudence.Record, 0, len(m.byCase))
	for _, rec := range m.byCase {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaseNumber < out[j].CaseNumber })
	return out
}
