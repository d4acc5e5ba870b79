package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common document validation errors
var (
	ErrEmptyDocumentID    = errors.New("document ID cannot be empty")
	ErrEmptyDocumentTitle = errors.New("document title cannot be empty")
	ErrInvalidDocKind     = errors.New("invalid document kind")
	ErrEmptyBusinessRef   = errors.New("document must reference a business")
	ErrEmptyClientRef     = errors.New("document must reference a client")
	ErrInvalidQuantity    = errors.New("line item quantity must be positive")
)

// DocumentKind distinguishes invoices from estimates.
type DocumentKind string

const (
	DocumentKindInvoice  DocumentKind = "invoice"
	DocumentKindEstimate DocumentKind = "estimate"
)

// LineItem pairs an Item with the quantity it appears at on one document.
type LineItem struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// Document is an invoice or estimate: the parent record composed from one
// business, one client, and an ordered set of line items, all owned by the
// same user. DocNumber is the per-user sequential number assigned at
// creation time.
//
// IsPaid is meaningful for invoices only; Notes for estimates only.
type Document struct {
	ID         uuid.UUID    `json:"id"`
	Kind       DocumentKind `json:"-"`
	UserID     uuid.UUID    `json:"user_id"`
	BusinessID uuid.UUID    `json:"business_id"`
	ClientID   uuid.UUID    `json:"client_id"`
	Title      string       `json:"title"`
	DocNumber  int64        `json:"doc_number"`
	Date       time.Time    `json:"date"`
	IsPaid     bool         `json:"is_paid,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	// Assembled associations. Nil / empty on bare store reads; populated
	// by the composer.
	Business *Party     `json:"business,omitempty"`
	Client   *Party     `json:"client,omitempty"`
	Lines    []LineItem `json:"items"`
}

// NewDocument creates a Document shell. The doc number, business and client
// references are filled in by the composer during creation.
func NewDocument(kind DocumentKind, userID uuid.UUID, title string, date time.Time) (*Document, error) {
	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.New(),
		Kind:      kind,
		UserID:    userID,
		Title:     title,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if kind != DocumentKindInvoice && kind != DocumentKindEstimate {
		return nil, ErrInvalidDocKind
	}

	if err := doc.validateShell(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks a fully composed Document, including its business and
// client references. Used before persisting.
func (d *Document) Validate() error {
	if err := d.validateShell(); err != nil {
		return err
	}

	if d.BusinessID == uuid.Nil {
		return ErrEmptyBusinessRef
	}

	if d.ClientID == uuid.Nil {
		return ErrEmptyClientRef
	}

	for _, line := range d.Lines {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}

	return nil
}

func (d *Document) validateShell() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDocumentID
	}

	if d.Kind != DocumentKindInvoice && d.Kind != DocumentKindEstimate {
		return ErrInvalidDocKind
	}

	if d.UserID == uuid.Nil {
		return ErrEmptyUserID
	}

	if d.Title == "" {
		return ErrEmptyDocumentTitle
	}

	return nil
}
