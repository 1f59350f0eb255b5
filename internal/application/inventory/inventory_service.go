package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/inventory"
	"github.com/resale/backend/internal/domain/shared"
)

// InventoryService exposes read access to materialized inventory.
// Writes happen only through the receiving commit, never here.
type InventoryService struct {
	inventoryRepo inventory.InventoryItemRepository
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(inventoryRepo inventory.InventoryItemRepository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
	}
}

// GetByID retrieves an inventory item by ID
func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// GetBySellerSKU retrieves an inventory item by its seller SKU
func (s *InventoryService) GetBySellerSKU(ctx context.Context, sku string) (*InventoryItemResponse, error) {
	item, err := s.inventoryRepo.FindBySellerSKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToInventoryItemResponse(item)
	return &response, nil
}

// List retrieves inventory items with filtering and pagination
func (s *InventoryService) List(ctx context.Context, filter InventoryListFilter) (*shared.Paginated[InventoryItemResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.OrderID != "" {
		orderID, err := uuid.Parse(filter.OrderID)
		if err != nil {
			return nil, shared.ErrInvalidInput
		}
		domainFilter.Filters["purchase_order_id"] = orderID
	}

	items, err := s.inventoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.inventoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToInventoryItemResponses(items), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}
