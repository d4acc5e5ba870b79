package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
)

// SettingsStore defines the interface for the per-user billing profile.
// Rows are addressed by the owning user; each user has at most one.
type SettingsStore interface {
	// Create saves the user's billing profile.
	// Returns ErrSettingsExist if the user already has one. Returns
	// validation errors from the domain Settings if data is invalid.
	Create(ctx context.Context, settings *domain.Settings) error

	// GetByUserID retrieves the billing profile of the given user.
	// Returns ErrSettingsNotFound if absent.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Settings, error)

	// Update modifies the user's billing profile in place.
	// Returns ErrSettingsNotFound if absent.
	Update(ctx context.Context, settings *domain.Settings) error

	// DeleteByUserID removes the billing profile of the given user.
	// Returns ErrSettingsNotFound if absent.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a SettingsStore bound to the provided transaction.
	WithTx(tx *sql.Tx) SettingsStore
}
