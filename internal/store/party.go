package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
)

// PartyStore defines the interface for business and client persistence.
// The two entity types share one contract; an implementation is bound to a
// single kind (and table) at construction time.
type PartyStore interface {
	// Create saves a new party to the store.
	// Returns ErrEmailExists if the owning user already has a party with
	// the same email. Returns validation errors from the domain Party if
	// data is invalid.
	Create(ctx context.Context, party *domain.Party) error

	// GetByID retrieves a party by its unique ID.
	// Returns ErrBusinessNotFound / ErrClientNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Party, error)

	// GetByEmail retrieves a party by its natural key, scoped to the
	// owning user. Returns the kind-specific not found error if absent.
	GetByEmail(ctx context.Context, userID uuid.UUID, email string) (*domain.Party, error)

	// ListByUserID retrieves all parties owned by the given user.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Party, error)

	// Update modifies an existing party in place.
	// Returns the kind-specific not found error if absent.
	Update(ctx context.Context, party *domain.Party) error

	// Delete removes a party by its ID.
	// Returns the kind-specific not found error if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindOrCreate looks the party up by (user, email) and returns the
	// stored row as-is when present, ignoring any differing fields in the
	// input (last-write is NOT applied). When absent it creates the input
	// and reports created=true. A concurrent create for the same key can
	// surface as a retryable ErrEmailExists.
	FindOrCreate(ctx context.Context, party *domain.Party) (found *domain.Party, created bool, err error)

	// SetVisible clears the is_hidden flag, called once a document
	// referencing the party has been fully persisted.
	SetVisible(ctx context.Context, id uuid.UUID) error

	// WithTx returns a PartyStore bound to the provided transaction.
	WithTx(tx *sql.Tx) PartyStore
}
