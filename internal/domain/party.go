package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common party validation errors
var (
	ErrEmptyPartyID    = errors.New("party ID cannot be empty")
	ErrEmptyPartyName  = errors.New("party name cannot be empty")
	ErrEmptyPartyEmail = errors.New("party email cannot be empty")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidKind     = errors.New("invalid party kind")
)

// PartyKind distinguishes the two contact-record tables. Businesses and
// clients carry the same fields but are owned and listed independently.
type PartyKind string

const (
	PartyKindBusiness PartyKind = "business"
	PartyKindClient   PartyKind = "client"
)

// Party is a business or client contact record attached to documents.
// Email is the natural dedup key within one owning user. Records start
// hidden and become visible once a document referencing them has been
// fully persisted.
type Party struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      PartyKind `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Street    string    `json:"street"`
	CityState string    `json:"city_state"`
	Zip       string    `json:"zip"`
	Phone     string    `json:"phone"`
	IsHidden  bool      `json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewParty creates a hidden Party owned by the given user.
// Returns an error if validation fails.
func NewParty(kind PartyKind, userID uuid.UUID, name, email, street, cityState, zip, phone string) (*Party, error) {
	now := time.Now().UTC()
	party := &Party{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Name:      name,
		Email:     email,
		Street:    street,
		CityState: cityState,
		Zip:       zip,
		Phone:     phone,
		IsHidden:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := party.Validate(); err != nil {
		return nil, err
	}

	return party, nil
}

// Validate checks if the Party has valid data.
func (p *Party) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPartyID
	}

	if p.UserID == uuid.Nil {
		return ErrEmptyUserID
	}

	if p.Kind != PartyKindBusiness && p.Kind != PartyKindClient {
		return ErrInvalidKind
	}

	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyPartyName
	}

	if p.Email == "" {
		return ErrEmptyPartyEmail
	}

	if !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}

	return nil
}
