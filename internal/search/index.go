package search

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain"
)

// RecordKind identifies which entity type a mirrored record belongs to.
type RecordKind string

const (
	RecordKindBusiness RecordKind = "business"
	RecordKindClient   RecordKind = "client"
	RecordKindItem     RecordKind = "item"
)

// Record is the mirrored projection of an entity. ObjectID is the entity's
// UUID in string form and doubles as the index object key. Party and item
// fields are mutually exclusive; unset fields are omitted from the payload.
type Record struct {
	ObjectID string     `json:"objectID"`
	Kind     RecordKind `json:"kind"`
	UserID   string     `json:"userID"`

	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Street    string `json:"street,omitempty"`
	CityState string `json:"cityState,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`

	Description string `json:"description,omitempty"`
	Rate        string `json:"rate,omitempty"`
}

// RecordFromParty projects a business or client into its index record.
func RecordFromParty(p *domain.Party) Record {
	kind := RecordKindBusiness
	if p.Kind == domain.PartyKindClient {
		kind = RecordKindClient
	}
	return Record{
		ObjectID:  p.ID.String(),
		Kind:      kind,
		UserID:    p.UserID.String(),
		Name:      p.Name,
		Email:     p.Email,
		Street:    p.Street,
		CityState: p.CityState,
		Zip:       p.Zip,
		Phone:     p.Phone,
	}
}

// RecordFromItem projects an item into its index record.
func RecordFromItem(item *domain.Item) Record {
	return Record{
		ObjectID:    item.ID.String(),
		Kind:        RecordKindItem,
		UserID:      item.UserID.String(),
		Description: item.Description,
		Rate:        item.Rate.String(),
	}
}

// Index is the write surface of the search mirror. Implementations must
// treat every call as idempotent with respect to the object key.
type Index interface {
	// SaveRecords upserts the given records into the index.
	SaveRecords(ctx context.Context, records []Record) error

	// PartialUpdateRecord merges the record's set fields into the existing
	// index object, creating it if absent.
	PartialUpdateRecord(ctx context.Context, record Record) error

	// DeleteRecord removes the object with the given key from the index.
	// Deleting an absent object is not an error.
	DeleteRecord(ctx context.Context, objectID string) error
}
