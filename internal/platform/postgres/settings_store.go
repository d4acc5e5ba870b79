package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/platform/logger"
	"github.com/ledgerline/ledgerline/internal/store"
)

// PostgresSettingsStore implements the store.SettingsStore interface using
// a PostgreSQL database as the storage backend. A unique index on user_id
// enforces the one-profile-per-user rule.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgresSettingsStore.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// WithTx implements store.SettingsStore.WithTx
func (s *PostgresSettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &PostgresSettingsStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.SettingsStore.Create
func (s *PostgresSettingsStore) Create(ctx context.Context, settings *domain.Settings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("settings validation failed during create",
			slog.String("error", err.Error()),
			slog.String("settings_id", settings.ID.String()))
		return err
	}

	query := `
		INSERT INTO settings (id, user_id, name, email, street, city_state, zip, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		settings.ID,
		settings.UserID,
		settings.Name,
		settings.Email,
		settings.Street,
		settings.CityState,
		settings.Zip,
		settings.Phone,
		settings.CreatedAt,
		settings.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate billing profile during create",
				slog.String("user_id", settings.UserID.String()))
			return store.ErrSettingsExist
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, settings.UserID)
		}

		log.Error("failed to create settings",
			slog.String("error", err.Error()),
			slog.String("settings_id", settings.ID.String()))
		return err
	}

	log.Info("settings created",
		slog.String("settings_id", settings.ID.String()),
		slog.String("user_id", settings.UserID.String()))
	return nil
}

// GetByUserID implements store.SettingsStore.GetByUserID
func (s *PostgresSettingsStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	query := `
		SELECT id, user_id, name, email, street, city_state, zip, phone, created_at, updated_at
		FROM settings
		WHERE user_id = $1
	`

	var settings domain.Settings
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.Name,
		&settings.Email,
		&settings.Street,
		&settings.CityState,
		&settings.Zip,
		&settings.Phone,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSettingsNotFound
		}
		return nil, err
	}

	return &settings, nil
}

// Update implements store.SettingsStore.Update
func (s *PostgresSettingsStore) Update(ctx context.Context, settings *domain.Settings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("settings validation failed during update",
			slog.String("error", err.Error()),
			slog.String("settings_id", settings.ID.String()))
		return err
	}

	settings.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE settings
		SET name = $1, email = $2, street = $3, city_state = $4, zip = $5, phone = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		settings.Name,
		settings.Email,
		settings.Street,
		settings.CityState,
		settings.Zip,
		settings.Phone,
		settings.UpdatedAt,
		settings.ID,
	)
	if err != nil {
		log.Error("failed to update settings",
			slog.String("error", err.Error()),
			slog.String("settings_id", settings.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrSettingsNotFound
	}

	return nil
}

// DeleteByUserID implements store.SettingsStore.DeleteByUserID
func (s *PostgresSettingsStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM settings WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrSettingsNotFound
	}

	return nil
}
