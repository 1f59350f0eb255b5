package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/shared"
)

// InventoryItemRepository defines the interface for inventory item persistence
type InventoryItemRepository interface {
	// FindByID finds an inventory item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByOrderItem finds the inventory item materialized for a purchase order line
	FindByOrderItem(ctx context.Context, orderItemID uuid.UUID) (*InventoryItem, error)

	// FindBySellerSKU finds an inventory item by its seller SKU
	FindBySellerSKU(ctx context.Context, sellerSKU string) (*InventoryItem, error)

	// FindByOrder finds all inventory items materialized from one purchase order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]InventoryItem, error)

	// FindAll finds inventory items with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// Count counts inventory items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an inventory item
	Save(ctx context.Context, item *InventoryItem) error
}
