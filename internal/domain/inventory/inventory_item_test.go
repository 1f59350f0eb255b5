package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInventoryItem(t *testing.T, quantity int, damaged bool) *InventoryItem {
	item, err := NewInventoryItem(uuid.New(), uuid.New(), "PO-2026-00001-abcd1234", "vinyl-lot-17", quantity, damaged)
	require.NoError(t, err)
	return item
}

func TestNewInventoryItem(t *testing.T) {
	t.Run("first receipt creates active record", func(t *testing.T) {
		item := createTestInventoryItem(t, 4, false)
		assert.Equal(t, 4, item.Quantity)
		assert.Equal(t, 4, item.Available)
		assert.Equal(t, InventoryStatusActive, item.Status)
	})

	t.Run("damaged first receipt creates damaged record", func(t *testing.T) {
		item := createTestInventoryItem(t, 4, true)
		assert.Equal(t, InventoryStatusDamaged, item.Status)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewInventoryItem(uuid.New(), uuid.New(), "", "prod", 1, false)
		assert.Error(t, err, "empty SKU")

		_, err = NewInventoryItem(uuid.New(), uuid.New(), "SKU", "", 1, false)
		assert.Error(t, err, "empty product ref")

		_, err = NewInventoryItem(uuid.New(), uuid.New(), "SKU", "prod", 0, false)
		assert.Error(t, err, "zero quantity")
	})
}

func TestInventoryItem_Receive(t *testing.T) {
	t.Run("accumulates quantity and available", func(t *testing.T) {
		item := createTestInventoryItem(t, 4, false)
		require.NoError(t, item.Receive(3, false))
		assert.Equal(t, 7, item.Quantity)
		assert.Equal(t, 7, item.Available)
		assert.Equal(t, InventoryStatusActive, item.Status)
	})

	t.Run("damaged receipt degrades status", func(t *testing.T) {
		item := createTestInventoryItem(t, 4, false)
		require.NoError(t, item.Receive(1, true))
		assert.Equal(t, InventoryStatusDamaged, item.Status)

		// A later clean receipt does not restore it.
		require.NoError(t, item.Receive(2, false))
		assert.Equal(t, InventoryStatusDamaged, item.Status)
	})

	t.Run("rejects non-positive delta", func(t *testing.T) {
		item := createTestInventoryItem(t, 4, false)
		assert.Error(t, item.Receive(0, false))
		assert.Error(t, item.Receive(-2, false))
	})

	t.Run("rejects archived item", func(t *testing.T) {
		item := createTestInventoryItem(t, 4, false)
		require.NoError(t, item.Archive())
		assert.Error(t, item.Receive(1, false))
	})
}

func TestInventoryItem_Archive(t *testing.T) {
	item := createTestInventoryItem(t, 4, false)
	require.NoError(t, item.Archive())
	assert.Equal(t, InventoryStatusArchived, item.Status)
	assert.Error(t, item.Archive(), "double archive rejected")
}

func TestSellerSKUFor(t *testing.T) {
	itemID := uuid.MustParse("3e0170e1-23f4-44ab-9a3b-111111111111")
	sku := SellerSKUFor("PO-2026-00042", itemID)
	assert.Equal(t, "PO-2026-00042-3e0170e1", sku)

	other := SellerSKUFor("PO-2026-00042", uuid.MustParse("7b9945c0-23f4-44ab-9a3b-111111111111"))
	assert.NotEqual(t, sku, other, "different lines yield different SKUs")
}
