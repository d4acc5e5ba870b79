package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettings(t *testing.T) {
	userID := uuid.New()

	t.Run("valid profile", func(t *testing.T) {
		settings, err := NewSettings(userID, "John Doe LLC", "johndoe@johndoellc.com", "123 Invoice St", "City, State", "01234", "123-234-3456")
		require.NoError(t, err)
		assert.Equal(t, userID, settings.UserID)
		assert.NotEqual(t, uuid.Nil, settings.ID)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := NewSettings(uuid.Nil, "John Doe LLC", "johndoe@johndoellc.com", "", "", "", "")
		assert.ErrorIs(t, err, ErrEmptyUserID)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewSettings(userID, "  ", "johndoe@johndoellc.com", "", "", "", "")
		assert.ErrorIs(t, err, ErrEmptySettingsName)
	})

	t.Run("empty email", func(t *testing.T) {
		_, err := NewSettings(userID, "John Doe LLC", "", "", "", "", "")
		assert.ErrorIs(t, err, ErrEmptySettingsEmail)
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := NewSettings(userID, "John Doe LLC", "not-an-email", "", "", "", "")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}
