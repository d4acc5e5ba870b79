package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrDuplicate if the subject identifier is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetBySub retrieves a user by their subject identifier, the natural
	// key carried in identity tokens.
	// Returns ErrUserNotFound if the user does not exist.
	GetBySub(ctx context.Context, sub string) (*domain.User, error)

	// Update modifies an existing user's profile fields.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// FindOrCreate looks the user up by subject identifier and returns the
	// stored row as-is when present, ignoring any differing profile fields
	// in the input. When absent it creates and returns the new record.
	// The operation is not atomic: a concurrent create for the same subject
	// can surface as a retryable ErrDuplicate.
	FindOrCreate(ctx context.Context, user *domain.User) (*domain.User, error)

	// NextDocNumber atomically assigns the user's next document number in a
	// single round-trip and returns the assigned value. Concurrent calls
	// for the same user never return the same number.
	// Returns ErrUserNotFound if the user does not exist.
	NextDocNumber(ctx context.Context, id uuid.UUID) (int64, error)

	// WithTx returns a UserStore bound to the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
