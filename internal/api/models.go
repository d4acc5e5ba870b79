package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/service/composer"
	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for document dates.
const DateFormat = "2006-01-02"

// PartyPayload is the business or client half of a request body.
type PartyPayload struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Street    string `json:"street"`
	CityState string `json:"city_state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

// LineItemPayload is one requested document line.
type LineItemPayload struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
}

// DocumentRequest represents the request body for creating or updating an
// invoice or estimate. IsPaid applies to invoices, Notes to estimates.
type DocumentRequest struct {
	ID       string            `json:"id,omitempty"`
	Title    string            `json:"title" validate:"required"`
	Date     string            `json:"date" validate:"required"`
	IsPaid   bool              `json:"is_paid"`
	Notes    string            `json:"notes"`
	Business PartyPayload      `json:"business" validate:"required"`
	Client   PartyPayload      `json:"client" validate:"required"`
	Items    []LineItemPayload `json:"items" validate:"required,min=1,dive"`
}

// ToInput converts the request to the composer's input type.
// Returns an error on a malformed id or date.
func (r *DocumentRequest) ToInput() (*composer.DocumentInput, error) {
	date, err := time.Parse(DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	id, err := parseOptionalID(r.ID)
	if err != nil {
		return nil, err
	}

	business, err := r.Business.toInput()
	if err != nil {
		return nil, err
	}
	client, err := r.Client.toInput()
	if err != nil {
		return nil, err
	}

	items := make([]composer.LineItemInput, 0, len(r.Items))
	for _, li := range r.Items {
		itemID, err := parseOptionalID(li.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, composer.LineItemInput{
			ID:          itemID,
			Description: li.Description,
			Rate:        li.Rate,
			Quantity:    li.Quantity,
		})
	}

	return &composer.DocumentInput{
		ID:       id,
		Title:    r.Title,
		Date:     date,
		IsPaid:   r.IsPaid,
		Notes:    r.Notes,
		Business: business,
		Client:   client,
		Items:    items,
	}, nil
}

func (p *PartyPayload) toInput() (composer.PartyInput, error) {
	id, err := parseOptionalID(p.ID)
	if err != nil {
		return composer.PartyInput{}, err
	}
	return composer.PartyInput{
		ID:        id,
		Name:      p.Name,
		Email:     p.Email,
		Street:    p.Street,
		CityState: p.CityState,
		Zip:       p.Zip,
		Phone:     p.Phone,
	}, nil
}

func parseOptionalID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// PartyRequest represents the request body for the standalone business and
// client CRUD endpoints.
type PartyRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Street    string `json:"street"`
	CityState string `json:"city_state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

// SettingsRequest represents the request body for the billing profile
// endpoints.
type SettingsRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Street    string `json:"street"`
	CityState string `json:"city_state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

// UserRequest represents the request body for profile edits on the
// authenticated user.
type UserRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Picture string `json:"picture"`
}

// ItemRequest represents the request body for the standalone item CRUD
// endpoints.
type ItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Rate        decimal.Decimal `json:"rate"`
}

// PartyResponse represents the response data for a business or client.
type PartyResponse struct {
	ID        string    `json:"id"`
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

// ItemResponse represents the response data for a standalone item.
type ItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	IsHidden    bool            `json:"is_hidden"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SettingsResponse represents the response data for the billing profile.
type SettingsResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Street    string    `json:"street"`
	CityState string    `json:"city_state"`
	Zip       string    `json:"zip"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineItemResponse represents one line of a document response.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    int             `json:"quantity"`
}

// DocumentResponse represents the response data for an invoice or estimate.
type DocumentResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	DocNumber int64              `json:"doc_number"`
	Date      string             `json:"date"`
	IsPaid    *bool              `json:"is_paid,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
	Business  *PartyResponse     `json:"business,omitempty"`
	Client    *PartyResponse     `json:"client,omitempty"`
	Items     []LineItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// UserResponse represents the response data for the authenticated user.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Picture   string `json:"picture"`
	DocNumber int64  `json:"doc_number"`
}

func partyToResponse(p *domain.Party) *PartyResponse {
	return &PartyResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Email:     p.Email,
		Street:    p.Street,
		CityState: p.CityState,
		Zip:       p.Zip,
		Phone:     p.Phone,
		IsHidden:  p.IsHidden,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func settingsToResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Email:     s.Email,
		Street:    s.Street,
		CityState: s.CityState,
		Zip:       s.Zip,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		Description: item.Description,
		Rate:        item.Rate,
		IsHidden:    item.IsHidden,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func documentToResponse(doc *domain.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:        doc.ID.String(),
		Title:     doc.Title,
		DocNumber: doc.DocNumber,
		Date:      doc.Date.Format(DateFormat),
		Items:     []LineItemResponse{},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	if doc.Kind == domain.DocumentKindInvoice {
		isPaid := doc.IsPaid
		resp.IsPaid = &isPaid
	} else {
		notes := doc.Notes
		resp.Notes = &notes
	}

	if doc.Business != nil {
		resp.Business = partyToResponse(doc.Business)
	}
	if doc.Client != nil {
		resp.Client = partyToResponse(doc.Client)
	}

	for _, line := range doc.Lines {
		resp.Items = append(resp.Items, LineItemResponse{
			ID:          line.Item.ID.String(),
			Description: line.Item.Description,
			Rate:        line.Item.Rate,
			Quantity:    line.Quantity,
		})
	}

	return resp
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Picture:   user.Picture,
		DocNumber: user.DocNumber,
	}
}
