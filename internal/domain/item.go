package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common item validation errors
var (
	ErrEmptyItemID          = errors.New("item ID cannot be empty")
	ErrEmptyItemDescription = errors.New("item description cannot be empty")
	ErrNegativeItemRate     = errors.New("item rate cannot be negative")
)

// Item is a billable line template: a description with a unit rate.
// Description is the natural dedup key within one owning user. An item can
// appear on many documents; the per-document quantity lives on the join
// record, not here.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	IsHidden    bool            `json:"is_hidden"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewItem creates a hidden Item owned by the given user.
// Returns an error if validation fails.
func NewItem(userID uuid.UUID, description string, rate decimal.Decimal) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Rate:        rate,
		IsHidden:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyItemID
	}

	if i.UserID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(i.Description) == "" {
		return ErrEmptyItemDescription
	}

	if i.Rate.IsNegative() {
		return ErrNegativeItemRate
	}

	return nil
}
