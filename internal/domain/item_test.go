package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	userID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		item, err := NewItem(userID, "Widget", decimal.NewFromFloat(10.0))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.True(t, item.IsHidden, "new items start hidden")
		assert.True(t, item.Rate.Equal(decimal.NewFromFloat(10.0)))
	})

	t.Run("zero rate is allowed", func(t *testing.T) {
		_, err := NewItem(userID, "Freebie", decimal.Zero)
		assert.NoError(t, err)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := NewItem(userID, "Widget", decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, ErrNegativeItemRate)
	})

	t.Run("blank description", func(t *testing.T) {
		_, err := NewItem(userID, "   ", decimal.Zero)
		assert.ErrorIs(t, err, ErrEmptyItemDescription)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := NewItem(uuid.Nil, "Widget", decimal.Zero)
		assert.ErrorIs(t, err, ErrEmptyUserID)
	})
}
