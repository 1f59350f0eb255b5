package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/resale/backend/internal/domain/inventory"
	"github.com/resale/backend/internal/domain/shared"
)

// newMockInventoryItemRepository creates a GormInventoryItemRepository with a mocked SQL connection
func newMockInventoryItemRepository(t *testing.T) (*GormInventoryItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInventoryItemRepository(gormDB), mock, mockDB
}

func TestNewGormInventoryItemRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormInventoryItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing inventory item", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		orderID := uuid.New()
		orderItemID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "purchase_order_id", "purchase_order_item_id", "seller_sku",
			"product_ref", "quantity", "available", "status", "version",
		}).AddRow(
			itemID, orderID, orderItemID, "PO-2026-00001-3e0170e1",
			"vinyl-lot-17", 4, 4, "Active", 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, orderItemID, item.PurchaseOrderItemID)
		assert.Equal(t, inventory.InventoryStatusActive, item.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent item", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindByOrderItem(t *testing.T) {
	t.Run("finds item materialized from an order line", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		orderItemID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "purchase_order_item_id", "seller_sku", "quantity", "available", "status",
		}).AddRow(itemID, orderItemID, "PO-2026-00001-ab12cd34", 7, 7, "Active")

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE purchase_order_item_id = \$1`).
			WithArgs(orderItemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByOrderItem(context.Background(), orderItemID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, orderItemID, item.PurchaseOrderItemID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound before the first receipt", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		orderItemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE purchase_order_item_id = \$1`).
			WithArgs(orderItemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByOrderItem(context.Background(), orderItemID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindBySellerSKU(t *testing.T) {
	t.Run("finds item by seller SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		sku := "PO-2026-00042-3e0170e1"

		rows := sqlmock.NewRows([]string{"id", "seller_sku", "quantity", "available", "status"}).
			AddRow(itemID, sku, 3, 3, "Active")

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE seller_sku = \$1`).
			WithArgs(sku, 1).
			WillReturnRows(rows)

		item, err := repo.FindBySellerSKU(context.Background(), sku)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, sku, item.SellerSKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindByOrder(t *testing.T) {
	t.Run("lists items for an order", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "purchase_order_id", "seller_sku", "quantity", "status"}).
			AddRow(uuid.New(), orderID, "PO-2026-00001-aaaa1111", 4, "Active").
			AddRow(uuid.New(), orderID, "PO-2026-00001-bbbb2222", 2, "Damaged")

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE purchase_order_id = \$1`).
			WithArgs(orderID).
			WillReturnRows(rows)

		items, err := repo.FindByOrder(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_Count(t *testing.T) {
	t.Run("counts with status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_items" WHERE status = \$1`).
			WithArgs("Active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		filter := shared.DefaultFilter()
		filter.Filters["status"] = "Active"
		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
