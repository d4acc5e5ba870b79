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

// PostgresDocumentStore implements the store.DocumentStore interface using
// a PostgreSQL database as the storage backend. One instance is bound to a
// single document kind: invoices carry an is_paid column, estimates a notes
// column; the tables are otherwise identical.
type PostgresDocumentStore struct {
	db       store.DBTX
	kind     domain.DocumentKind
	table    string
	extraCol string
	logger   *slog.Logger
}

// NewPostgresInvoiceStore creates the DocumentStore bound to the invoices table.
func NewPostgresInvoiceStore(db store.DBTX, logger *slog.Logger) *PostgresDocumentStore {
	return newDocumentStore(db, domain.DocumentKindInvoice, "invoices", "is_paid", logger, "invoice_store")
}

// NewPostgresEstimateStore creates the DocumentStore bound to the estimates table.
func NewPostgresEstimateStore(db store.DBTX, logger *slog.Logger) *PostgresDocumentStore {
	return newDocumentStore(db, domain.DocumentKindEstimate, "estimates", "notes", logger, "estimate_store")
}

func newDocumentStore(
	db store.DBTX,
	kind domain.DocumentKind,
	table string,
	extraCol string,
	logger *slog.Logger,
	component string,
) *PostgresDocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDocumentStore{
		db:       db,
		kind:     kind,
		table:    table,
		extraCol: extraCol,
		logger:   logger.With(slog.String("component", component)),
	}
}

// Ensure PostgresDocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*PostgresDocumentStore)(nil)

// WithTx implements store.DocumentStore.WithTx
func (s *PostgresDocumentStore) WithTx(tx *sql.Tx) store.DocumentStore {
	return &PostgresDocumentStore{
		db:       tx,
		kind:     s.kind,
		table:    s.table,
		extraCol: s.extraCol,
		logger:   s.logger,
	}
}

// extraValue returns the kind-specific column value for the document.
func (s *PostgresDocumentStore) extraValue(doc *domain.Document) any {
	if s.kind == domain.DocumentKindInvoice {
		return doc.IsPaid
	}
	return doc.Notes
}

// Create implements store.DocumentStore.Create
func (s *PostgresDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc.Kind = s.kind
	if err := doc.Validate(); err != nil {
		log.Warn("document validation failed during create",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, business_id, client_id, title, doc_number, date, %s, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.table, s.extraCol)

	_, err := s.db.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.BusinessID,
		doc.ClientID,
		doc.Title,
		doc.DocNumber,
		doc.Date,
		s.extraValue(doc),
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: broken business/client/user reference", store.ErrInvalidEntity)
		}

		log.Error("failed to create document",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	log.Info("document created",
		slog.String("table", s.table),
		slog.String("document_id", doc.ID.String()),
		slog.String("user_id", doc.UserID.String()),
		slog.Int64("doc_number", doc.DocNumber))
	return nil
}

// GetByID implements store.DocumentStore.GetByID
func (s *PostgresDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, business_id, client_id, title, doc_number, date, %s, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, s.extraCol, s.table)

	doc, err := s.scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListByUserID implements store.DocumentStore.ListByUserID
func (s *PostgresDocumentStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT id, user_id, business_id, client_id, title, doc_number, date, %s, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY doc_number DESC
	`, s.extraCol, s.table)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list documents",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	docs := []*domain.Document{}
	for rows.Next() {
		doc, err := s.scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// Update implements store.DocumentStore.Update
// Only scalar fields change; the doc number and the business/client
// references are fixed at creation time.
func (s *PostgresDocumentStore) Update(ctx context.Context, doc *domain.Document) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc.Kind = s.kind
	if err := doc.Validate(); err != nil {
		log.Warn("document validation failed during update",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	doc.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, date = $2, %s = $3, updated_at = $4
		WHERE id = $5
	`, s.table, s.extraCol)

	result, err := s.db.ExecContext(
		ctx,
		query,
		doc.Title,
		doc.Date,
		s.extraValue(doc),
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		log.Error("failed to update document",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrDocumentNotFound
	}

	return nil
}

// Delete implements store.DocumentStore.Delete
func (s *PostgresDocumentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete document",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("document_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrDocumentNotFound
	}

	log.Info("document deleted",
		slog.String("table", s.table),
		slog.String("document_id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresDocumentStore) scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := s.scanDocumentRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *PostgresDocumentStore) scanDocumentRow(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var extra any
	if s.kind == domain.DocumentKindInvoice {
		extra = &doc.IsPaid
	} else {
		extra = &doc.Notes
	}

	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.BusinessID,
		&doc.ClientID,
		&doc.Title,
		&doc.DocNumber,
		&doc.Date,
		extra,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Kind = s.kind
	return &doc, nil
}
