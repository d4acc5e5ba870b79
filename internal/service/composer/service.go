package composer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/shopspring/decimal"
)

// Service errors
var (
	// ErrIDMismatch is returned when the document id in an update payload
	// disagrees with the id addressed by the request path.
	ErrIDMismatch = errors.New("document id mismatch between path and payload")

	// ErrNoLineItems is returned when a document payload carries no line
	// items.
	ErrNoLineItems = errors.New("document must carry at least one line item")
)

// PartyInput carries the business or client half of a document payload.
// ID is set on updates, where the party is addressed directly; on creation
// the party is resolved by email via find-or-create.
type PartyInput struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Street    string
	CityState string
	Zip       string
	Phone     string
}

// LineItemInput carries one requested line of a document payload. ID, when
// set, references an existing item owned by the caller; otherwise the item
// is resolved by description via find-or-create.
type LineItemInput struct {
	ID          uuid.UUID
	Description string
	Rate        decimal.Decimal
	Quantity    int
}

// DocumentInput is the full payload of a document create or update request.
// IsPaid applies to invoices, Notes to estimates; the inapplicable field is
// ignored.
type DocumentInput struct {
	ID       uuid.UUID
	Title    string
	Date     time.Time
	IsPaid   bool
	Notes    string
	Business PartyInput
	Client   PartyInput
	Items    []LineItemInput
}

// Service composes documents of one kind. The application wires one
// instance for invoices and one for estimates.
type Service interface {
	// Create resolves the payload's business, client, and items, assigns the
	// caller's next document number, and persists the document with its join
	// rows in a single transaction. Newly created entities are mirrored into
	// the search index; a failed transaction removes them from the index
	// again. Returns the assembled document.
	Create(ctx context.Context, userID uuid.UUID, in *DocumentInput) (*domain.Document, error)

	// Update applies the payload to an existing document owned by the
	// caller. Entity updates are applied eagerly in place; the document's
	// line item set is reconciled to exactly the submitted set. Returns the
	// reassembled document.
	Update(ctx context.Context, userID, docID uuid.UUID, in *DocumentInput) (*domain.Document, error)

	// Delete removes a document owned by the caller. Join rows cascade.
	Delete(ctx context.Context, userID, docID uuid.UUID) error

	// Get returns a document owned by the caller with its business, client,
	// and line items assembled.
	Get(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error)

	// List returns the caller's documents, newest first, fully assembled.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error)
}
