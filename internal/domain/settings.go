package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common settings validation errors
var (
	ErrEmptySettingsID    = errors.New("settings ID cannot be empty")
	ErrEmptySettingsName  = errors.New("settings name cannot be empty")
	ErrEmptySettingsEmail = errors.New("settings email cannot be empty")
)

// Settings is the user's own billing profile: the name, email, and address
// they bill under. Each user owns at most one row.
type Settings struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Street    string    `json:"street"`
	CityState string    `json:"city_state"`
	Zip       string    `json:"zip"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSettings creates the billing profile owned by the given user.
// Returns an error if validation fails.
func NewSettings(userID uuid.UUID, name, email, street, cityState, zip, phone string) (*Settings, error) {
	now := time.Now().UTC()
	settings := &Settings{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Street:    street,
		CityState: cityState,
		Zip:       zip,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks if the Settings has valid data.
func (s *Settings) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySettingsID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySettingsName
	}

	if s.Email == "" {
		return ErrEmptySettingsEmail
	}

	if !strings.Contains(s.Email, "@") {
		return ErrInvalidEmail
	}

	return nil
}
