package search

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndexSaveAndDelete(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	rec := Record{ObjectID: "a", Kind: RecordKindItem, Description: "Widget"}
	require.NoError(t, idx.SaveRecords(ctx, []Record{rec}))
	assert.Equal(t, 1, idx.Len())

	got, ok := idx.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Widget", got.Description)

	require.NoError(t, idx.DeleteRecord(ctx, "a"))
	assert.Equal(t, 0, idx.Len())

	// deleting an absent object is not an error
	assert.NoError(t, idx.DeleteRecord(ctx, "a"))
}

func TestMemoryIndexPartialUpdateMerges(t *testing.T) {
	idx := NewMemoryIndex()
	ctx := context.Background()

	require.NoError(t, idx.SaveRecords(ctx, []Record{{
		ObjectID: "b",
		Kind:     RecordKindBusiness,
		Name:     "XYZ",
		Email:    "xyz@xyz.com",
		Street:   "1 Main St",
	}}))

	require.NoError(t, idx.PartialUpdateRecord(ctx, Record{
		ObjectID: "b",
		Email:    "new@xyz.com",
	}))

	got, ok := idx.Get("b")
	require.True(t, ok)
	assert.Equal(t, "new@xyz.com", got.Email, "set field overwritten")
	assert.Equal(t, "XYZ", got.Name, "unset field preserved")
	assert.Equal(t, "1 Main St", got.Street)
}

func TestMemoryIndexPartialUpdateCreatesWhenAbsent(t *testing.T) {
	idx := NewMemoryIndex()

	require.NoError(t, idx.PartialUpdateRecord(context.Background(), Record{
		ObjectID: "c",
		Kind:     RecordKindClient,
		Name:     "ABC",
	}))

	_, ok := idx.Get("c")
	assert.True(t, ok)
}

func TestRecordProjections(t *testing.T) {
	userID := uuid.New()

	party, err := domain.NewParty(domain.PartyKindClient, userID, "ABC", "abc@abc.com", "2 Side St", "Portland, OR", "97201", "555-0101")
	require.NoError(t, err)

	rec := RecordFromParty(party)
	assert.Equal(t, party.ID.String(), rec.ObjectID)
	assert.Equal(t, RecordKindClient, rec.Kind)
	assert.Equal(t, "abc@abc.com", rec.Email)

	item, err := domain.NewItem(userID, "Widget", decimal.NewFromFloat(10.5))
	require.NoError(t, err)

	rec = RecordFromItem(item)
	assert.Equal(t, RecordKindItem, rec.Kind)
	assert.Equal(t, "Widget", rec.Description)
	assert.Equal(t, "10.5", rec.Rate)
}
