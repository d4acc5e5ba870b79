package search

import (
	"context"
	"sync"
)

// MemoryIndex is an in-process Index used in tests and local development.
type MemoryIndex struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{records: make(map[string]Record)}
}

// Ensure MemoryIndex implements Index interface
var _ Index = (*MemoryIndex)(nil)

// SaveRecords implements Index.SaveRecords
func (m *MemoryIndex) SaveRecords(_ context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range records {
		m.records[rec.ObjectID] = rec
	}
	return nil
}

// PartialUpdateRecord implements Index.PartialUpdateRecord
// Set fields of the incoming record overwrite the stored ones; zero-valued
// fields leave the stored record untouched, matching the merge semantics of
// the hosted backend.
func (m *MemoryIndex) PartialUpdateRecord(_ context.Context, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ObjectID]
	if !ok {
		m.records[record.ObjectID] = record
		return nil
	}

	if record.Kind != "" {
		existing.Kind = record.Kind
	}
	if record.UserID != "" {
		existing.UserID = record.UserID
	}
	if record.Name != "" {
		existing.Name = record.Name
	}
	if record.Email != "" {
		existing.Email = record.Email
	}
	if record.Street != "" {
		existing.Street = record.Street
	}
	if record.CityState != "" {
		existing.CityState = record.CityState
	}
	if record.Zip != "" {
		existing.Zip = record.Zip
	}
	if record.Phone != "" {
		existing.Phone = record.Phone
	}
	if record.Description != "" {
		existing.Description = record.Description
	}
	if record.Rate != "" {
		existing.Rate = record.Rate
	}

	m.records[record.ObjectID] = existing
	return nil
}

// DeleteRecord implements Index.DeleteRecord
func (m *MemoryIndex) DeleteRecord(_ context.Context, objectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, objectID)
	return nil
}

// Get returns the stored record and whether it exists.
func (m *MemoryIndex) Get(objectID string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[objectID]
	return rec, ok
}

// Len returns the number of stored records.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
