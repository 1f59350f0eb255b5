package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a purchase order together with its lines
	Save(ctx context.Context, order *PurchaseOrder) error

	// UpdateHeader persists header fields only, leaving lines untouched
	UpdateHeader(ctx context.Context, order *PurchaseOrder) error

	// SaveItem creates or updates a single line
	SaveItem(ctx context.Context, item *PurchaseOrderItem) error

	// DeleteItem removes a single line
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// ApplyItemReceipt persists a received line with a compare-and-swap on
	// the concurrency token: the UPDATE matches the line's prior updated_at
	// and fails with ErrStaleWrite when another writer got there first.
	ApplyItemReceipt(ctx context.Context, item *PurchaseOrderItem, priorToken time.Time) error

	// NextOrderSequence returns the next order number sequence for a year
	NextOrderSequence(ctx context.Context, year int) (int64, error)
}

// ReceivingEventRepository defines the interface for the receiving audit trail
type ReceivingEventRepository interface {
	// Save appends one audit event
	Save(ctx context.Context, event *ReceivingEvent) error

	// FindByOrder lists the audit trail of a purchase order, oldest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ReceivingEvent, error)
}
