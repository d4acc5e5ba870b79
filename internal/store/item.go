package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
)

// ItemStore defines the interface for billable item persistence.
type ItemStore interface {
	// Create saves a new item to the store.
	// Returns ErrDescriptionExists if the owning user already has an item
	// with the same description. Returns validation errors from the domain
	// Item if data is invalid.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// GetByDescription retrieves an item by its natural key, scoped to the
	// owning user. Returns ErrItemNotFound if absent.
	GetByDescription(ctx context.Context, userID uuid.UUID, description string) (*domain.Item, error)

	// ListByUserID retrieves all items owned by the given user.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error)

	// Update modifies an existing item in place.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.Item) error

	// Delete removes an item by its ID.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindOrCreate looks the item up by (user, description) and returns the
	// stored row as-is when present, ignoring any differing fields in the
	// input. When absent it creates the input and reports created=true.
	// A concurrent create for the same key can surface as a retryable
	// ErrDescriptionExists.
	FindOrCreate(ctx context.Context, item *domain.Item) (found *domain.Item, created bool, err error)

	// SetVisible clears the is_hidden flag, called once a document
	// referencing the item has been fully persisted.
	SetVisible(ctx context.Context, id uuid.UUID) error

	// WithTx returns an ItemStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ItemStore
}
