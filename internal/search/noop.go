package search

import "context"

// NoopIndex discards all writes. Used when no search credentials are
// configured.
type NoopIndex struct{}

// NewNoopIndex creates a NoopIndex.
func NewNoopIndex() *NoopIndex {
	return &NoopIndex{}
}

// Ensure NoopIndex implements Index interface
var _ Index = (*NoopIndex)(nil)

func (NoopIndex) SaveRecords(context.Context, []Record) error       { return nil }
func (NoopIndex) PartialUpdateRecord(context.Context, Record) error { return nil }
func (NoopIndex) DeleteRecord(context.Context, string) error        { return nil }
