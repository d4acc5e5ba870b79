package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/service/composer"
	"github.com/ledgerline/ledgerline/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not owned", store.ErrNotOwned, http.StatusUnauthorized},
		{"wrapped not owned", fmt.Errorf("updating: %w", store.ErrNotOwned), http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"document not found", store.ErrDocumentNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"description exists", store.ErrDescriptionExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"id mismatch", composer.ErrIDMismatch, http.StatusBadRequest},
		{"no line items", composer.ErrNoLineItems, http.StatusBadRequest},
		{"domain validation", domain.ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	internal := errors.New("pq: connection refused on 10.0.0.5:5432")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.5")
}

func TestGetSafeErrorMessageKnownErrors(t *testing.T) {
	assert.Equal(t, "Business not found", GetSafeErrorMessage(store.ErrBusinessNotFound))
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "You do not own this record", GetSafeErrorMessage(store.ErrNotOwned))
	assert.Equal(t, "Settings not found", GetSafeErrorMessage(store.ErrSettingsNotFound))
	assert.Equal(t, "Settings already exist", GetSafeErrorMessage(store.ErrSettingsExist))
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'DocumentRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag",
	)
	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Title")
	assert.NotContains(t, msg, "DocumentRequest")
}
