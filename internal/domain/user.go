package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
	ErrEmptySubject = errors.New("subject identifier cannot be empty")
)

// User represents an authenticated account. Users are created on first
// successful authentication from the identity token's claims and are the
// owning side of every other entity in the system.
//
// DocNumber is the next sequential number to assign to a document created
// by this user. It is only ever advanced through the store's atomic
// NextDocNumber operation.
type User struct {
	ID        uuid.UUID `json:"id"`
	Sub       string    `json:"sub"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture"`
	DocNumber int64     `json:"doc_number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a User from identity claims. It generates a new UUID,
// sets timestamps, and starts the document counter at 1.
// Returns an error if validation fails.
func NewUser(sub, name, email, picture string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Sub:       sub,
		Name:      name,
		Email:     email,
		Picture:   picture,
		DocNumber: 1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(u.Sub) == "" {
		return ErrEmptySubject
	}

	return nil
}
