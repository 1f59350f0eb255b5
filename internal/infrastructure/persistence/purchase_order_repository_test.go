package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/resale/backend/internal/domain/purchasing"
	"github.com/resale/backend/internal/domain/shared"
)

// newMockPurchaseOrderRepository creates a GormPurchaseOrderRepository with a mocked SQL connection
func newMockPurchaseOrderRepository(t *testing.T) (*GormPurchaseOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormPurchaseOrderRepository(gormDB), mock, mockDB
}

func TestNewGormPurchaseOrderRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormPurchaseOrderRepository_FindByID(t *testing.T) {
	t.Run("finds existing order with its lines", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		itemID := uuid.New()

		orderRows := sqlmock.NewRows([]string{
			"id", "order_number", "source", "status", "is_locked",
			"subtotal", "tax", "shipping", "fees", "discounts", "version",
		}).AddRow(
			orderID, "PO-2026-00001", "estate-sale", "open", false,
			decimal.NewFromInt(100), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, 1,
		)

		itemRows := sqlmock.NewRows([]string{
			"id", "order_id", "product_ref", "quantity_expected", "quantity_received",
			"cost_assignment_method", "allocation_basis", "receive_status",
		}).AddRow(
			itemID, orderID, "vinyl-lot-17", 10, 0,
			"by_market_value", decimal.NewFromInt(8), "pending",
		)

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)
		mock.ExpectQuery(`SELECT \* FROM "purchase_order_items" WHERE "purchase_order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, "PO-2026-00001", order.OrderNumber)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "vinyl-lot-17", order.Items[0].ProductRef)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent order", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_FindByOrderNumber(t *testing.T) {
	t.Run("returns ErrNotFound for unknown number", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE order_number = \$1`).
			WithArgs("PO-2026-99999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByOrderNumber(context.Background(), "PO-2026-99999")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_ApplyItemReceipt(t *testing.T) {
	t.Run("persists receipt when token matches", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		priorToken := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
		item := &purchasing.PurchaseOrderItem{
			ID:               itemID,
			QuantityReceived: 4,
			ReceiveStatus:    purchasing.ReceiveStatusPartial,
			UpdatedAt:        time.Now(),
		}

		mock.ExpectExec(`UPDATE "purchase_order_items" SET`).
			WithArgs(item.QuantityReceived, item.ReceiveStatus, item.UpdatedAt, itemID, priorToken).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyItemReceipt(context.Background(), item, priorToken)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrStaleWrite when another writer won", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		priorToken := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
		item := &purchasing.PurchaseOrderItem{
			ID:               itemID,
			QuantityReceived: 4,
			ReceiveStatus:    purchasing.ReceiveStatusPartial,
			UpdatedAt:        time.Now(),
		}

		mock.ExpectExec(`UPDATE "purchase_order_items" SET`).
			WithArgs(item.QuantityReceived, item.ReceiveStatus, item.UpdatedAt, itemID, priorToken).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ApplyItemReceipt(context.Background(), item, priorToken)

		assert.ErrorIs(t, err, purchasing.ErrStaleWrite)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_DeleteItem(t *testing.T) {
	t.Run("deletes existing line", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "purchase_order_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteItem(context.Background(), itemID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "purchase_order_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteItem(context.Background(), itemID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_NextOrderSequence(t *testing.T) {
	t.Run("starts at one for an empty year", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "order_number" FROM "purchase_orders" WHERE order_number LIKE \$1`).
			WithArgs("PO-2026-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"order_number"}))

		seq, err := repo.NextOrderSequence(context.Background(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), seq)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "order_number" FROM "purchase_orders" WHERE order_number LIKE \$1`).
			WithArgs("PO-2026-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"order_number"}).AddRow("PO-2026-00041"))

		seq, err := repo.NextOrderSequence(context.Background(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), seq)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_Count(t *testing.T) {
	t.Run("counts with status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE status = \$1`).
			WithArgs("open").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		filter := shared.DefaultFilter()
		filter.Filters["status"] = "open"
		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_UpdateHeader(t *testing.T) {
	t.Run("returns ErrNotFound for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		order, err := purchasing.NewPurchaseOrder("PO-2026-00001", "auction", purchasing.HeaderCosts{
			Subtotal: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "purchase_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.UpdateHeader(context.Background(), order)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
