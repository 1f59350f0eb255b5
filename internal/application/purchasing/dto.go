package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resale/backend/internal/domain/purchasing"
)

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	Source    string          `json:"source" binding:"max=100"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Fees      decimal.Decimal `json:"fees"`
	Discounts decimal.Decimal `json:"discounts"`
	Items     []LineItemInput `json:"items"`
}

// LineItemInput represents a line in create/add/update requests
type LineItemInput struct {
	ProductRef            string           `json:"product_ref" binding:"required,min=1,max=100"`
	Description           string           `json:"description" binding:"max=500"`
	QuantityExpected      int              `json:"quantity_expected" binding:"min=0"`
	CostAssignmentMethod  string           `json:"cost_assignment_method" binding:"required,oneof=manual by_market_value"`
	AllocationBasis       decimal.Decimal  `json:"allocation_basis"`
	AllocationBasisSource string           `json:"allocation_basis_source" binding:"max=100"`
	ManualUnitCost        *decimal.Decimal `json:"manual_unit_cost"`
}

// UpdatePurchaseOrderRequest represents a header update (unlocked orders only)
type UpdatePurchaseOrderRequest struct {
	Source    string          `json:"source" binding:"max=100"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Fees      decimal.Decimal `json:"fees"`
	Discounts decimal.Decimal `json:"discounts"`
}

// PurchaseOrderListFilter represents filter options for the purchase order list
type PurchaseOrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=open partially_received received"`
	IsLocked *bool  `form:"is_locked"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID              uuid.UUID                   `json:"id"`
	OrderNumber     string                      `json:"order_number"`
	Source          string                      `json:"source,omitempty"`
	Status          string                      `json:"status"`
	IsLocked        bool                        `json:"is_locked"`
	Subtotal        decimal.Decimal             `json:"subtotal"`
	Tax             decimal.Decimal             `json:"tax"`
	Shipping        decimal.Decimal             `json:"shipping"`
	Fees            decimal.Decimal             `json:"fees"`
	Discounts       decimal.Decimal             `json:"discounts"`
	TotalCost       decimal.Decimal             `json:"total_cost"`
	Items           []PurchaseOrderItemResponse `json:"items"`
	ItemCount       int                         `json:"item_count"`
	ReceiveProgress decimal.Decimal             `json:"receive_progress"`
	LockedAt        *time.Time                  `json:"locked_at,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
	Version         int                         `json:"version"`
}

// PurchaseOrderListItemResponse represents a purchase order in list responses (less detail)
type PurchaseOrderListItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Source          string          `json:"source,omitempty"`
	Status          string          `json:"status"`
	IsLocked        bool            `json:"is_locked"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	ItemCount       int             `json:"item_count"`
	ReceiveProgress decimal.Decimal `json:"receive_progress"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PurchaseOrderItemResponse represents a purchase order line in API responses
type PurchaseOrderItemResponse struct {
	ID                    uuid.UUID        `json:"id"`
	ProductRef            string           `json:"product_ref"`
	Description           string           `json:"description,omitempty"`
	QuantityExpected      int              `json:"quantity_expected"`
	QuantityReceived      int              `json:"quantity_received"`
	Remaining             int              `json:"remaining"`
	CostAssignmentMethod  string           `json:"cost_assignment_method"`
	AllocationBasis       decimal.Decimal  `json:"allocation_basis"`
	AllocationBasisSource string           `json:"allocation_basis_source,omitempty"`
	AllocatedUnitCost     *decimal.Decimal `json:"allocated_unit_cost,omitempty"`
	ReceiveStatus         string           `json:"receive_status"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// ==================== Receiving DTOs ====================

// ReceivingCommitItemInput is one line of a receiving commit request
type ReceivingCommitItemInput struct {
	ItemID       uuid.UUID `json:"purchase_order_item_id" binding:"required"`
	QtyToReceive int       `json:"qty_to_receive"`
	Damaged      bool      `json:"damaged"`
	Short        bool      `json:"short"`
	UpdatedAt    time.Time `json:"updated_at" binding:"required"`
}

// CommitReceivingRequest represents a receiving commit payload
type CommitReceivingRequest struct {
	Items []ReceivingCommitItemInput `json:"items" binding:"required,min=1,dive"`
}

// StagingLineResponse is one row of the staging projection
type StagingLineResponse struct {
	ItemID            uuid.UUID        `json:"purchase_order_item_id"`
	ProductRef        string           `json:"product_ref"`
	Description       string           `json:"description,omitempty"`
	QuantityExpected  int              `json:"quantity_expected"`
	QuantityReceived  int              `json:"quantity_received"`
	Remaining         int              `json:"remaining"`
	AllocatedUnitCost *decimal.Decimal `json:"allocated_unit_cost,omitempty"`
	ReceiveStatus     string           `json:"receive_status"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ReceivingProgressResponse summarizes receiving completion for an order
type ReceivingProgressResponse struct {
	TotalExpected  int             `json:"total_expected"`
	TotalReceived  int             `json:"total_received"`
	TotalRemaining int             `json:"total_remaining"`
	Percent        decimal.Decimal `json:"percent"`
}

// StagingViewResponse is the full staging payload for a purchase order
type StagingViewResponse struct {
	OrderID     uuid.UUID                 `json:"purchase_order_id"`
	OrderNumber string                    `json:"order_number"`
	Lines       []StagingLineResponse     `json:"lines"`
	Progress    ReceivingProgressResponse `json:"progress"`
}

// CommitReceivingResponse is the result of a committed receiving batch
type CommitReceivingResponse struct {
	InventoryItemIDs []uuid.UUID               `json:"inventory_item_ids"`
	NewStatus        string                    `json:"new_status"`
	Progress         ReceivingProgressResponse `json:"progress"`
}

// ReceivingEventResponse is one row of the receiving audit trail
type ReceivingEventResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"purchase_order_id"`
	ItemID    uuid.UUID `json:"purchase_order_item_id"`
	EventType string    `json:"event_type"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ==================== Converters ====================

// ToPurchaseOrderResponse converts a domain PurchaseOrder to a response DTO
func ToPurchaseOrderResponse(order *purchasing.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(order.Items))
	for i := range order.Items {
		items[i] = ToPurchaseOrderItemResponse(&order.Items[i])
	}

	return PurchaseOrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Source:          order.Source,
		Status:          string(order.Status),
		IsLocked:        order.IsLocked,
		Subtotal:        order.Subtotal,
		Tax:             order.Tax,
		Shipping:        order.Shipping,
		Fees:            order.Fees,
		Discounts:       order.Discounts,
		TotalCost:       order.TotalCost(),
		Items:           items,
		ItemCount:       order.ItemCount(),
		ReceiveProgress: order.ReceiveProgress(),
		LockedAt:        order.LockedAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
	}
}

// ToPurchaseOrderItemResponse converts a domain line to a response DTO
func ToPurchaseOrderItemResponse(item *purchasing.PurchaseOrderItem) PurchaseOrderItemResponse {
	return PurchaseOrderItemResponse{
		ID:                    item.ID,
		ProductRef:            item.ProductRef,
		Description:           item.Description,
		QuantityExpected:      item.QuantityExpected,
		QuantityReceived:      item.QuantityReceived,
		Remaining:             item.Remaining(),
		CostAssignmentMethod:  string(item.CostAssignmentMethod),
		AllocationBasis:       item.AllocationBasis,
		AllocationBasisSource: item.AllocationBasisSource,
		AllocatedUnitCost:     item.AllocatedUnitCost,
		ReceiveStatus:         string(item.ReceiveStatus),
		UpdatedAt:             item.ConcurrencyToken(),
	}
}

// ToPurchaseOrderListItemResponse converts a domain order to a list response DTO
func ToPurchaseOrderListItemResponse(order *purchasing.PurchaseOrder) PurchaseOrderListItemResponse {
	return PurchaseOrderListItemResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Source:          order.Source,
		Status:          string(order.Status),
		IsLocked:        order.IsLocked,
		TotalCost:       order.TotalCost(),
		ItemCount:       order.ItemCount(),
		ReceiveProgress: order.ReceiveProgress(),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// ToPurchaseOrderListItemResponses converts a slice of domain orders to list responses
func ToPurchaseOrderListItemResponses(orders []purchasing.PurchaseOrder) []PurchaseOrderListItemResponse {
	responses := make([]PurchaseOrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderListItemResponse(&orders[i])
	}
	return responses
}

// ToStagingLineResponse converts a domain staging line to a response DTO
func ToStagingLineResponse(line purchasing.StagingLine) StagingLineResponse {
	return StagingLineResponse{
		ItemID:            line.ItemID,
		ProductRef:        line.ProductRef,
		Description:       line.Description,
		QuantityExpected:  line.QuantityExpected,
		QuantityReceived:  line.QuantityReceived,
		Remaining:         line.Remaining,
		AllocatedUnitCost: line.AllocatedUnitCost,
		ReceiveStatus:     string(line.ReceiveStatus),
		UpdatedAt:         line.UpdatedAt,
	}
}

// ToReceivingEventResponses converts audit events to response DTOs
func ToReceivingEventResponses(events []purchasing.ReceivingEvent) []ReceivingEventResponse {
	responses := make([]ReceivingEventResponse, len(events))
	for i, event := range events {
		responses[i] = ReceivingEventResponse{
			ID:        event.ID,
			OrderID:   event.OrderID,
			ItemID:    event.ItemID,
			EventType: string(event.EventType),
			Quantity:  event.Quantity,
			Note:      event.Note,
			CreatedAt: event.CreatedAt,
		}
	}
	return responses
}

// ToReceivingProgressResponse converts domain progress to a response DTO
func ToReceivingProgressResponse(progress purchasing.ReceivingProgress) ReceivingProgressResponse {
	return ReceivingProgressResponse{
		TotalExpected:  progress.TotalExpected,
		TotalReceived:  progress.TotalReceived,
		TotalRemaining: progress.TotalRemaining,
		Percent:        progress.Percent,
	}
}

