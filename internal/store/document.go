package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
)

// DocumentStore defines the interface for invoice and estimate persistence.
// An implementation is bound to a single document kind (and table) at
// construction time; the type-specific column (is_paid for invoices, notes
// for estimates) is handled by the implementation.
type DocumentStore interface {
	// Create saves a new document row. Associations are persisted
	// separately through the DocumentItemStore.
	// Returns validation errors from the domain Document if data is
	// invalid, or ErrInvalidEntity on a broken business/client reference.
	Create(ctx context.Context, doc *domain.Document) error

	// GetByID retrieves a document by its unique ID, without associations.
	// Returns ErrDocumentNotFound if the document does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)

	// ListByUserID retrieves all documents owned by the given user, newest
	// first, without associations.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error)

	// Update modifies a document's scalar fields in place.
	// Returns ErrDocumentNotFound if the document does not exist.
	Update(ctx context.Context, doc *domain.Document) error

	// Delete removes a document by its ID. Join rows cascade at the
	// database level. Returns ErrDocumentNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DocumentStore bound to the provided transaction.
	WithTx(tx *sql.Tx) DocumentStore
}

// DocumentItemStore defines the interface for the document/item association
// rows of one document kind.
type DocumentItemStore interface {
	// Create inserts an association row.
	// Returns ErrDuplicate if the (document, item) pair already exists and
	// ErrInvalidEntity if either side of the pair is absent.
	Create(ctx context.Context, rec *domain.DocumentItem) error

	// ListByDocumentID retrieves all association rows for a document.
	ListByDocumentID(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentItem, error)

	// GetByItemID retrieves the association row carrying the given item.
	// Returns ErrDocumentItemNotFound if absent.
	GetByItemID(ctx context.Context, itemID uuid.UUID) (*domain.DocumentItem, error)

	// UpdateQuantity changes the quantity of an existing association row.
	// Returns ErrDocumentItemNotFound if the composite key is absent.
	UpdateQuantity(ctx context.Context, docID, itemID uuid.UUID, quantity int) error

	// DeleteByDocumentID removes all association rows for a document.
	DeleteByDocumentID(ctx context.Context, docID uuid.UUID) error

	// DeleteExcept removes every association row of the document whose item
	// id is not in keep. An empty keep list removes all rows. Implements
	// the full-replace reconciliation policy for document updates.
	DeleteExcept(ctx context.Context, docID uuid.UUID, keep []uuid.UUID) error

	// WithTx returns a DocumentItemStore bound to the provided transaction.
	WithTx(tx *sql.Tx) DocumentItemStore
}
