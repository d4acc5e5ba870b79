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

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// WithTx implements store.ItemStore.WithTx
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{db: tx, logger: s.logger}
}

// Create implements store.ItemStore.Create
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO items (id, user_id, description, rate, is_hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.UserID,
		item.Description,
		item.Rate,
		item.IsHidden,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate description during item creation",
				slog.String("item_id", item.ID.String()),
				slog.String("user_id", item.UserID.String()))
			return store.ErrDescriptionExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, item.UserID)
		}

		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	log.Info("item created",
		slog.String("item_id", item.ID.String()),
		slog.String("user_id", item.UserID.String()))
	return nil
}

// GetByID implements store.ItemStore.GetByID
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `
		SELECT id, user_id, description, rate, is_hidden, created_at, updated_at
		FROM items
		WHERE id = $1
	`
	return s.scanItem(s.db.QueryRowContext(ctx, query, id))
}

// GetByDescription implements store.ItemStore.GetByDescription
func (s *PostgresItemStore) GetByDescription(ctx context.Context, userID uuid.UUID, description string) (*domain.Item, error) {
	query := `
		SELECT id, user_id, description, rate, is_hidden, created_at, updated_at
		FROM items
		WHERE user_id = $1 AND description = $2
	`
	return s.scanItem(s.db.QueryRowContext(ctx, query, userID, description))
}

// ListByUserID implements store.ItemStore.ListByUserID
func (s *PostgresItemStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, description, rate, is_hidden, created_at, updated_at
		FROM items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []*domain.Item{}
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Description,
			&item.Rate,
			&item.IsHidden,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Update implements store.ItemStore.Update
func (s *PostgresItemStore) Update(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during update",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	item.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE items
		SET description = $1, rate = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		item.Description,
		item.Rate,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDescriptionExists
		}
		log.Error("failed to update item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrItemNotFound
	}

	return nil
}

// Delete implements store.ItemStore.Delete
func (s *PostgresItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrItemNotFound
	}

	return nil
}

// FindOrCreate implements store.ItemStore.FindOrCreate
// The found row is returned as-is; differing fields in the input are not
// applied. A concurrent create for the same (user, description) pair can
// surface as a retryable ErrDescriptionExists.
func (s *PostgresItemStore) FindOrCreate(ctx context.Context, item *domain.Item) (*domain.Item, bool, error) {
	found, err := s.GetByDescription(ctx, item.UserID, item.Description)
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	if err := s.Create(ctx, item); err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// SetVisible implements store.ItemStore.SetVisible
func (s *PostgresItemStore) SetVisible(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE items
		SET is_hidden = FALSE, updated_at = $2
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrItemNotFound
	}

	return nil
}

func (s *PostgresItemStore) scanItem(row *sql.Row) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Description,
		&item.Rate,
		&item.IsHidden,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
