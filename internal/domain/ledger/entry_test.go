package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	productID := uuid.New()
	date := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates a valid entry", func(t *testing.T) {
		e, err := NewEntry(productID, date, KindPurchase, decimal.NewFromInt(10), decimal.NewFromInt(50))

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.Equal(t, productID, e.ProductID)
		assert.Equal(t, KindPurchase, e.Kind)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewEntry(uuid.Nil, date, KindPurchase, decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewEntry(productID, time.Time{}, KindPurchase, decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewEntry(productID, date, EntryKind("ADJUST"), decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity and amount", func(t *testing.T) {
		_, err := NewEntry(productID, date, KindConsume, decimal.NewFromInt(-1), decimal.NewFromInt(1))
		assert.Error(t, err)

		_, err = NewEntry(productID, date, KindConsume, decimal.NewFromInt(1), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("zero quantity and amount are allowed", func(t *testing.T) {
		_, err := NewEntry(productID, date, KindPurchase, decimal.Zero, decimal.Zero)
		assert.NoError(t, err)
	})
}

func TestSignedValues(t *testing.T) {
	productID := uuid.New()
	date := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	purchase, err := NewEntry(productID, date, KindPurchase, decimal.NewFromInt(10), decimal.NewFromInt(50))
	require.NoError(t, err)
	consume, err := NewEntry(productID, date, KindConsume, decimal.NewFromInt(10), decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.True(t, purchase.SignedQuantity().Equal(decimal.NewFromInt(10)))
	assert.True(t, purchase.SignedAmount().Equal(decimal.NewFromInt(50)))
	assert.True(t, consume.SignedQuantity().Equal(decimal.NewFromInt(-10)))
	assert.True(t, consume.SignedAmount().Equal(decimal.NewFromInt(-50)))
}

func TestEntryKind(t *testing.T) {
	assert.True(t, KindPurchase.IsValid())
	assert.True(t, KindConsume.IsValid())
	assert.False(t, EntryKind("").IsValid())
	assert.False(t, EntryKind("purchase").IsValid())
	assert.Equal(t, "PURCHASE", KindPurchase.String())
}
