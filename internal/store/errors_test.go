package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"user not found", ErrUserNotFound, ErrNotFound},
		{"business not found", ErrBusinessNotFound, ErrNotFound},
		{"client not found", ErrClientNotFound, ErrNotFound},
		{"item not found", ErrItemNotFound, ErrNotFound},
		{"document not found", ErrDocumentNotFound, ErrNotFound},
		{"document item not found", ErrDocumentItemNotFound, ErrNotFound},
		{"email exists", ErrEmailExists, ErrDuplicate},
		{"description exists", ErrDescriptionExists, ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrItemNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("loading: %w", ErrDocumentNotFound)))
	assert.False(t, IsNotFoundError(ErrEmailExists))
	assert.False(t, IsNotFoundError(errors.New("boom")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("creating: %w", ErrDescriptionExists)))
	assert.False(t, IsDuplicateError(ErrNotFound))
}
