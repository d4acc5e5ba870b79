package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/platform/logger"
	"github.com/ledgerline/ledgerline/internal/store"
)

// PostgresDocumentItemStore implements the store.DocumentItemStore
// interface using a PostgreSQL database as the storage backend. One
// instance is bound to a single association table (invoice_items or
// estimate_items).
type PostgresDocumentItemStore struct {
	db     store.DBTX
	table  string
	docCol string
	logger *slog.Logger
}

// NewPostgresInvoiceItemStore creates the DocumentItemStore bound to the
// invoice_items table.
func NewPostgresInvoiceItemStore(db store.DBTX, logger *slog.Logger) *PostgresDocumentItemStore {
	return newDocumentItemStore(db, "invoice_items", "invoice_id", logger, "invoice_item_store")
}

// NewPostgresEstimateItemStore creates the DocumentItemStore bound to the
// estimate_items table.
func NewPostgresEstimateItemStore(db store.DBTX, logger *slog.Logger) *PostgresDocumentItemStore {
	return newDocumentItemStore(db, "estimate_items", "estimate_id", logger, "estimate_item_store")
}

func newDocumentItemStore(
	db store.DBTX,
	table string,
	docCol string,
	logger *slog.Logger,
	component string,
) *PostgresDocumentItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDocumentItemStore{
		db:     db,
		table:  table,
		docCol: docCol,
		logger: logger.With(slog.String("component", component)),
	}
}

// Ensure PostgresDocumentItemStore implements store.DocumentItemStore interface
var _ store.DocumentItemStore = (*PostgresDocumentItemStore)(nil)

// WithTx implements store.DocumentItemStore.WithTx
func (s *PostgresDocumentItemStore) WithTx(tx *sql.Tx) store.DocumentItemStore {
	return &PostgresDocumentItemStore{
		db:     tx,
		table:  s.table,
		docCol: s.docCol,
		logger: s.logger,
	}
}

// Create implements store.DocumentItemStore.Create
func (s *PostgresDocumentItemStore) Create(ctx context.Context, rec *domain.DocumentItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rec.Validate(); err != nil {
		log.Warn("document item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("document_id", rec.DocumentID.String()),
			slog.String("item_id", rec.ItemID.String()))
		return err
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
		rec.UpdatedAt = now
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, item_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.table, s.docCol)

	_, err := s.db.ExecContext(
		ctx,
		query,
		rec.DocumentID,
		rec.ItemID,
		rec.Quantity,
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: document item", store.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: document or item missing", store.ErrInvalidEntity)
		}

		log.Error("failed to create document item",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", rec.DocumentID.String()),
			slog.String("item_id", rec.ItemID.String()))
		return err
	}

	return nil
}

// ListByDocumentID implements store.DocumentItemStore.ListByDocumentID
func (s *PostgresDocumentItemStore) ListByDocumentID(ctx context.Context, docID uuid.UUID) ([]*domain.DocumentItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s, item_id, quantity, created_at, updated_at
		FROM %s
		WHERE %s = $1
		ORDER BY created_at
	`, s.docCol, s.table, s.docCol)

	rows, err := s.db.QueryContext(ctx, query, docID)
	if err != nil {
		log.Error("failed to list document items",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", docID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	recs := []*domain.DocumentItem{}
	for rows.Next() {
		var rec domain.DocumentItem
		err := rows.Scan(
			&rec.DocumentID,
			&rec.ItemID,
			&rec.Quantity,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

// GetByItemID implements store.DocumentItemStore.GetByItemID
func (s *PostgresDocumentItemStore) GetByItemID(ctx context.Context, itemID uuid.UUID) (*domain.DocumentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s, item_id, quantity, created_at, updated_at
		FROM %s
		WHERE item_id = $1
	`, s.docCol, s.table)

	var rec domain.DocumentItem
	err := s.db.QueryRowContext(ctx, query, itemID).Scan(
		&rec.DocumentID,
		&rec.ItemID,
		&rec.Quantity,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDocumentItemNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// UpdateQuantity implements store.DocumentItemStore.UpdateQuantity
func (s *PostgresDocumentItemStore) UpdateQuantity(ctx context.Context, docID, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET quantity = $1, updated_at = $2
		WHERE %s = $3 AND item_id = $4
	`, s.table, s.docCol)

	result, err := s.db.ExecContext(ctx, query, quantity, time.Now().UTC(), docID, itemID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update document item quantity",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", docID.String()),
			slog.String("item_id", itemID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrDocumentItemNotFound
	}

	return nil
}

// DeleteByDocumentID implements store.DocumentItemStore.DeleteByDocumentID
func (s *PostgresDocumentItemStore) DeleteByDocumentID(ctx context.Context, docID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, s.table, s.docCol)

	_, err := s.db.ExecContext(ctx, query, docID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete document items",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", docID.String()))
		return err
	}

	return nil
}

// DeleteExcept implements store.DocumentItemStore.DeleteExcept
func (s *PostgresDocumentItemStore) DeleteExcept(ctx context.Context, docID uuid.UUID, keep []uuid.UUID) error {
	if len(keep) == 0 {
		return s.DeleteByDocumentID(ctx, docID)
	}

	placeholders := make([]string, len(keep))
	args := make([]any, 0, len(keep)+1)
	args = append(args, docID)
	for i, id := range keep {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND item_id NOT IN (%s)`,
		s.table, s.docCol, strings.Join(placeholders, ", "))

	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to reconcile document items",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", docID.String()))
		return err
	}

	return nil
}
