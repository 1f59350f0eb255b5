package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/shared"
)

// InventoryStatus represents the sellable state of an inventory item
type InventoryStatus string

const (
	InventoryStatusPending  InventoryStatus = "Pending"
	InventoryStatusActive   InventoryStatus = "Active"
	InventoryStatusDamaged  InventoryStatus = "Damaged"
	InventoryStatusArchived InventoryStatus = "Archived"
)

// IsValid checks if the status is a valid InventoryStatus
func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryStatusPending, InventoryStatusActive, InventoryStatusDamaged, InventoryStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of InventoryStatus
func (s InventoryStatus) String() string {
	return string(s)
}

// InventoryItem accumulates the received units of one purchase order line.
// One record per line: repeated receipts increment the same record.
type InventoryItem struct {
	shared.BaseAggregateRoot
	PurchaseOrderItemID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	PurchaseOrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerSKU           string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	ProductRef          string          `gorm:"type:varchar(100);not null"`
	Quantity            int             `gorm:"not null;default:0"` // Total received to date
	Available           int             `gorm:"not null;default:0"` // Quantity minus sold/reserved (equal at creation)
	Status              InventoryStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem materializes the first receipt of a purchase order line
func NewInventoryItem(orderID, orderItemID uuid.UUID, sellerSKU, productRef string, quantity int, damaged bool) (*InventoryItem, error) {
	if sellerSKU == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Seller SKU cannot be empty")
	}
	if productRef == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_REF", "Product reference cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity must be positive")
	}

	status := InventoryStatusActive
	if damaged {
		status = InventoryStatusDamaged
	}

	return &InventoryItem{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		PurchaseOrderItemID: orderItemID,
		PurchaseOrderID:     orderID,
		SellerSKU:           sellerSKU,
		ProductRef:          productRef,
		Quantity:            quantity,
		Available:           quantity,
		Status:              status,
	}, nil
}

// Receive increments the on-hand quantities for a subsequent receipt.
// A single damaged receipt marks the whole record damaged; there is no
// per-unit condition tracking at this layer.
func (i *InventoryItem) Receive(delta int, damaged bool) error {
	if delta <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Receipt delta must be positive")
	}
	if i.Status == InventoryStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Cannot receive into an archived inventory item")
	}

	i.Quantity += delta
	i.Available += delta
	if damaged {
		i.Status = InventoryStatusDamaged
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Archive retires the inventory item from sale
func (i *InventoryItem) Archive() error {
	if i.Status == InventoryStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Inventory item is already archived")
	}
	i.Status = InventoryStatusArchived
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SellerSKUFor derives the unique seller SKU for a purchase order line:
// the order number plus a short line discriminator.
func SellerSKUFor(orderNumber string, orderItemID uuid.UUID) string {
	return fmt.Sprintf("%s-%s", orderNumber, orderItemID.String()[:8])
}
