package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid invoice shell", func(t *testing.T) {
		doc, err := NewDocument(DocumentKindInvoice, userID, "Invoice", date)
		require.NoError(t, err)
		assert.Equal(t, DocumentKindInvoice, doc.Kind)
		assert.Equal(t, int64(0), doc.DocNumber, "number assigned later by the composer")
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := NewDocument(DocumentKind("receipt"), userID, "Receipt", date)
		assert.ErrorIs(t, err, ErrInvalidDocKind)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewDocument(DocumentKindEstimate, userID, "", date)
		assert.ErrorIs(t, err, ErrEmptyDocumentTitle)
	})
}

func TestDocumentValidate(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	valid := func(t *testing.T) *Document {
		doc, err := NewDocument(DocumentKindInvoice, userID, "Invoice", date)
		require.NoError(t, err)
		doc.BusinessID = uuid.New()
		doc.ClientID = uuid.New()
		return doc
	}

	t.Run("fully composed", func(t *testing.T) {
		assert.NoError(t, valid(t).Validate())
	})

	t.Run("missing business reference", func(t *testing.T) {
		doc := valid(t)
		doc.BusinessID = uuid.Nil
		assert.ErrorIs(t, doc.Validate(), ErrEmptyBusinessRef)
	})

	t.Run("missing client reference", func(t *testing.T) {
		doc := valid(t)
		doc.ClientID = uuid.Nil
		assert.ErrorIs(t, doc.Validate(), ErrEmptyClientRef)
	})

	t.Run("non-positive line quantity", func(t *testing.T) {
		doc := valid(t)
		doc.Lines = []LineItem{{Quantity: 0}}
		assert.ErrorIs(t, doc.Validate(), ErrInvalidQuantity)
	})
}
