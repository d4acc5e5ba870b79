package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/service/composer"
	"github.com/ledgerline/ledgerline/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authorization errors
	case errors.Is(err, store.ErrNotOwned):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, composer.ErrIDMismatch),
		errors.Is(err, composer.ErrNoLineItems),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// isDomainValidationError reports whether err is one of the domain types'
// self-validation errors.
func isDomainValidationError(err error) bool {
	validationErrors := []error{
		domain.ErrEmptyUserID,
		domain.ErrEmptySubject,
		domain.ErrEmptyPartyID,
		domain.ErrEmptyPartyName,
		domain.ErrEmptyPartyEmail,
		domain.ErrInvalidEmail,
		domain.ErrInvalidKind,
		domain.ErrEmptySettingsID,
		domain.ErrEmptySettingsName,
		domain.ErrEmptySettingsEmail,
		domain.ErrEmptyItemID,
		domain.ErrEmptyItemDescription,
		domain.ErrNegativeItemRate,
		domain.ErrEmptyDocumentID,
		domain.ErrEmptyDocumentTitle,
		domain.ErrInvalidDocKind,
		domain.ErrEmptyBusinessRef,
		domain.ErrEmptyClientRef,
		domain.ErrInvalidQuantity,
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authorization errors
	case errors.Is(err, store.ErrNotOwned):
		return "You do not own this record"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrBusinessNotFound):
		return "Business not found"

	case errors.Is(err, store.ErrClientNotFound):
		return "Client not found"

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrDocumentNotFound),
		errors.Is(err, store.ErrDocumentItemNotFound):
		return "Document not found"

	case errors.Is(err, store.ErrSettingsNotFound):
		return "Settings not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDescriptionExists):
		return "Description already exists"

	case errors.Is(err, store.ErrSettingsExist):
		return "Settings already exist"

	case errors.Is(err, store.ErrDuplicate):
		return "Record already exists"

	// Bad request errors
	case errors.Is(err, composer.ErrIDMismatch):
		return "Document id mismatch"

	case errors.Is(err, composer.ErrNoLineItems):
		return "Document must carry at least one line item"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case isDomainValidationError(err):
		return "Validation failed: " + err.Error()

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format:
		// "Key: 'DocumentRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) > 1 {
			return "Validation failed: " + strings.TrimSpace(parts[1])
		}
	}

	return "Validation failed"
}
