package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/inventory"
)

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID                  uuid.UUID `json:"id"`
	PurchaseOrderID     uuid.UUID `json:"purchase_order_id"`
	PurchaseOrderItemID uuid.UUID `json:"purchase_order_item_id"`
	SellerSKU           string    `json:"seller_sku"`
	ProductRef          string    `json:"product_ref"`
	Quantity            int       `json:"quantity"`
	Available           int       `json:"available"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// InventoryListFilter represents filter options for the inventory list
type InventoryListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=Pending Active Damaged Archived"`
	OrderID  string `form:"purchase_order_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// ToInventoryItemResponse converts a domain inventory item to a response DTO
func ToInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                  item.ID,
		PurchaseOrderID:     item.PurchaseOrderID,
		PurchaseOrderItemID: item.PurchaseOrderItemID,
		SellerSKU:           item.SellerSKU,
		ProductRef:          item.ProductRef,
		Quantity:            item.Quantity,
		Available:           item.Available,
		Status:              string(item.Status),
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of inventory items to responses
func ToInventoryItemResponses(items []inventory.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return responses
}
