package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentItem is the association row between a document and an item. Its
// composite key is (document id, item id); quantity is per pair. Join rows
// are cascade-deleted with their parent document at the database level.
type DocumentItem struct {
	DocumentID uuid.UUID `json:"document_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks if the DocumentItem has valid data.
func (di *DocumentItem) Validate() error {
	if di.DocumentID == uuid.Nil {
		return ErrEmptyDocumentID
	}

	if di.ItemID == uuid.Nil {
		return ErrEmptyItemID
	}

	if di.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	return nil
}
