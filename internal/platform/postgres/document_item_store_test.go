package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentItemStoreDeleteExcept(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresInvoiceItemStore(db, nil)

	docID := uuid.New()
	keepA := uuid.New()
	keepB := uuid.New()

	mock.ExpectExec(`DELETE FROM invoice_items WHERE invoice_id = \$1 AND item_id NOT IN \(\$2, \$3\)`).
		WithArgs(docID, keepA, keepB).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := s.DeleteExcept(context.Background(), docID, []uuid.UUID{keepA, keepB})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentItemStoreDeleteExceptEmptyKeepDeletesAll(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresEstimateItemStore(db, nil)

	docID := uuid.New()

	mock.ExpectExec(`DELETE FROM estimate_items WHERE estimate_id = \$1`).
		WithArgs(docID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := s.DeleteExcept(context.Background(), docID, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentItemStoreUpdateQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresInvoiceItemStore(db, nil)

	docID := uuid.New()
	itemID := uuid.New()

	mock.ExpectExec("UPDATE invoice_items").
		WithArgs(5, sqlmock.AnyArg(), docID, itemID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpdateQuantity(context.Background(), docID, itemID, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentItemStoreUpdateQuantityMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresInvoiceItemStore(db, nil)

	mock.ExpectExec("UPDATE invoice_items").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 2)
	assert.ErrorIs(t, err, store.ErrDocumentItemNotFound)
}

func TestDocumentItemStoreUpdateQuantityRejectsNonPositive(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewPostgresInvoiceItemStore(db, nil)

	err := s.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestDocumentItemStoreCreateRejectsInvalidQuantity(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewPostgresEstimateItemStore(db, nil)

	rec := &domain.DocumentItem{
		DocumentID: uuid.New(),
		ItemID:     uuid.New(),
		Quantity:   0,
	}

	err := s.Create(context.Background(), rec)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
