package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrUserNotFound, ErrItemNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a business with the same email for the same
	// user). A find-or-create race surfaces as this error and is retryable.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or violates a foreign-key constraint. Check the wrapped
	// error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrNotOwned is returned when the caller's authenticated user id does
	// not match the entity's owning user id.
	ErrNotOwned = errors.New("entity not owned by caller")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrBusinessNotFound indicates that the requested business does not exist in the store.
	ErrBusinessNotFound = fmt.Errorf("%w: business", ErrNotFound)

	// ErrClientNotFound indicates that the requested client does not exist in the store.
	ErrClientNotFound = fmt.Errorf("%w: client", ErrNotFound)

	// ErrItemNotFound indicates that the requested item does not exist in the store.
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)

	// ErrDocumentNotFound indicates that the requested invoice or estimate
	// does not exist in the store.
	ErrDocumentNotFound = fmt.Errorf("%w: document", ErrNotFound)

	// ErrDocumentItemNotFound indicates that the requested document/item
	// association does not exist in the store.
	ErrDocumentItemNotFound = fmt.Errorf("%w: document item", ErrNotFound)

	// ErrSettingsNotFound indicates that the user has no billing profile.
	ErrSettingsNotFound = fmt.Errorf("%w: settings", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a business or client with the given
	// email already exists for the owning user.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrDescriptionExists indicates that an item with the given description
	// already exists for the owning user.
	ErrDescriptionExists = fmt.Errorf("%w: description", ErrDuplicate)

	// ErrSettingsExist indicates that the user already has a billing profile.
	ErrSettingsExist = fmt.Errorf("%w: settings", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
