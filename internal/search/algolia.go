package search

import (
	"context"
	"fmt"

	algolia "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
)

// AlgoliaIndex implements Index on top of a hosted Algolia application.
type AlgoliaIndex struct {
	index *algolia.Index
}

// NewAlgoliaIndex creates an Index backed by the named Algolia index.
func NewAlgoliaIndex(appID, apiKey, indexName string) *AlgoliaIndex {
	client := algolia.NewClient(appID, apiKey)
	return &AlgoliaIndex{index: client.InitIndex(indexName)}
}

// Ensure AlgoliaIndex implements Index interface
var _ Index = (*AlgoliaIndex)(nil)

// SaveRecords implements Index.SaveRecords
func (a *AlgoliaIndex) SaveRecords(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	objects := make([]interface{}, len(records))
	for i, rec := range records {
		objects[i] = rec
	}

	if _, err := a.index.SaveObjects(objects, ctx); err != nil {
		return fmt.Errorf("saving %d objects: %w", len(records), err)
	}
	return nil
}

// PartialUpdateRecord implements Index.PartialUpdateRecord
func (a *AlgoliaIndex) PartialUpdateRecord(ctx context.Context, record Record) error {
	if _, err := a.index.PartialUpdateObject(record, ctx); err != nil {
		return fmt.Errorf("updating object %s: %w", record.ObjectID, err)
	}
	return nil
}

// DeleteRecord implements Index.DeleteRecord
func (a *AlgoliaIndex) DeleteRecord(ctx context.Context, objectID string) error {
	if _, err := a.index.DeleteObject(objectID, ctx); err != nil {
		return fmt.Errorf("deleting object %s: %w", objectID, err)
	}
	return nil
}
