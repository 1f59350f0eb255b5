package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resale/backend/internal/domain/inventory"
	"github.com/resale/backend/internal/domain/purchasing"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// lockOrder runs allocation through the lock endpoint and returns the
// concurrency token of the first line
func (f *handlerFixture) lockOrder(t *testing.T, order *purchasing.PurchaseOrder) time.Time {
	t.Helper()
	w, _ := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/lock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	return order.Items[0].ConcurrencyToken()
}

func TestReceivingHandler_GetStaging(t *testing.T) {
	t.Run("projects remaining quantities for a locked order", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		f.lockOrder(t, order)

		w, resp := f.do(t, "GET", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/staging", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "PO-2026-00042", data["order_number"])

		lines := data["lines"].([]any)
		require.Len(t, lines, 1)
		line := lines[0].(map[string]any)
		assert.Equal(t, float64(10), line["remaining"])
		assert.Equal(t, "pending", line["receive_status"])
		assert.NotEmpty(t, line["updated_at"])

		progress := data["progress"].(map[string]any)
		assert.Equal(t, float64(10), progress["total_remaining"])
	})

	t.Run("409 for an unlocked order", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)

		w, resp := f.do(t, "GET", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/staging", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeOrderNotLocked, resp.Error.Code)
	})

	t.Run("404 for an unknown order", func(t *testing.T) {
		f := newHandlerFixture()

		w, resp := f.do(t, "GET", "/api/v1/purchase-orders/"+uuid.NewString()+"/receiving/staging", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestReceivingHandler_Commit(t *testing.T) {
	commitBody := func(itemID uuid.UUID, qty int, token time.Time) map[string]any {
		return map[string]any{
			"items": []map[string]any{
				{
					"purchase_order_item_id": itemID,
					"qty_to_receive":         qty,
					"updated_at":             token,
				},
			},
		}
	}

	t.Run("partial receipt materializes inventory and appends audit events", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)
		itemID := order.Items[0].ID

		w, resp := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(itemID, 4, token))

		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "partially_received", data["new_status"])
		assert.Len(t, data["inventory_item_ids"], 1)

		progress := data["progress"].(map[string]any)
		assert.Equal(t, float64(4), progress["total_received"])
		assert.Equal(t, float64(6), progress["total_remaining"])

		require.Len(t, f.inventoryRepo.items, 1)
		for _, item := range f.inventoryRepo.items {
			assert.Equal(t, 4, item.Quantity)
			assert.Equal(t, inventory.InventoryStatusActive, item.Status)
			assert.Contains(t, item.SellerSKU, order.OrderNumber)
		}

		require.Len(t, f.eventRepo.events, 1)
		assert.Equal(t, purchasing.ReceivingEventReceive, f.eventRepo.events[0].EventType)
		assert.Equal(t, 4, f.eventRepo.events[0].Quantity)
	})

	t.Run("second receipt increments the same inventory record", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)
		itemID := order.Items[0].ID

		w, _ := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(itemID, 4, token))
		require.Equal(t, http.StatusOK, w.Code)

		token = order.Items[0].ConcurrencyToken()
		w, resp := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(itemID, 6, token))

		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "received", data["new_status"])

		require.Len(t, f.inventoryRepo.items, 1)
		for _, item := range f.inventoryRepo.items {
			assert.Equal(t, 10, item.Quantity)
		}
	})

	t.Run("409 on a stale concurrency token", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)
		itemID := order.Items[0].ID

		w, resp := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(itemID, 4, token.Add(-time.Second)))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeStaleWrite, resp.Error.Code)
		assert.Empty(t, f.inventoryRepo.items)
		assert.Empty(t, f.eventRepo.events)
	})

	t.Run("422 when quantity exceeds remaining", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)
		itemID := order.Items[0].ID

		w, resp := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(itemID, 11, token))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeQuantityExceedsRemaining, resp.Error.Code)
	})

	t.Run("422 when every line receives zero", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)
		itemID := order.Items[0].ID

		w, resp := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(itemID, 0, token))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeNothingToReceive, resp.Error.Code)
	})

	t.Run("409 when the order is not locked", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		itemID := order.Items[0].ID

		w, resp := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(itemID, 4, order.Items[0].ConcurrencyToken()))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeOrderNotLocked, resp.Error.Code)
	})

	t.Run("404 on an unknown line", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)

		w, resp := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			commitBody(uuid.New(), 4, token))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeLineNotFound, resp.Error.Code)
	})

	t.Run("400 on an empty batch", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		f.lockOrder(t, order)

		w, _ := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			map[string]any{"items": []map[string]any{}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("damaged receipt marks the inventory record damaged", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)
		itemID := order.Items[0].ID

		w, _ := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			map[string]any{
				"items": []map[string]any{
					{
						"purchase_order_item_id": itemID,
						"qty_to_receive":         2,
						"damaged":                true,
						"updated_at":             token,
					},
				},
			})

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, f.inventoryRepo.items, 1)
		for _, item := range f.inventoryRepo.items {
			assert.Equal(t, inventory.InventoryStatusDamaged, item.Status)
		}
		require.Len(t, f.eventRepo.events, 2)
		assert.Equal(t, purchasing.ReceivingEventDamage, f.eventRepo.events[1].EventType)
	})
}

func TestReceivingHandler_ListEvents(t *testing.T) {
	t.Run("returns the audit trail after a commit", func(t *testing.T) {
		f := newHandlerFixture()
		order := f.seedOrder(t, 100)
		token := f.lockOrder(t, order)
		itemID := order.Items[0].ID

		w, _ := f.do(t, "POST", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/commit",
			map[string]any{
				"items": []map[string]any{
					{
						"purchase_order_item_id": itemID,
						"qty_to_receive":         4,
						"updated_at":             token,
					},
				},
			})
		require.Equal(t, http.StatusOK, w.Code)

		w, resp := f.do(t, "GET", "/api/v1/purchase-orders/"+order.ID.String()+"/receiving/events", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		events := resp.Data.([]any)
		require.Len(t, events, 1)
		event := events[0].(map[string]any)
		assert.Equal(t, "receive", event["event_type"])
		assert.Equal(t, float64(4), event["quantity"])
	})

	t.Run("404 for an unknown order", func(t *testing.T) {
		f := newHandlerFixture()

		w, resp := f.do(t, "GET", "/api/v1/purchase-orders/"+uuid.NewString()+"/receiving/events", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}
