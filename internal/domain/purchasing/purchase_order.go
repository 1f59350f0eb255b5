package purchasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resale/backend/internal/domain/shared"
	"github.com/resale/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderStatus represents the receiving status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusOpen              PurchaseOrderStatus = "open"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusOpen, PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CostAssignmentMethod determines how a line's unit cost is assigned
type CostAssignmentMethod string

const (
	CostAssignmentManual        CostAssignmentMethod = "manual"
	CostAssignmentByMarketValue CostAssignmentMethod = "by_market_value"
)

// IsValid checks if the method is a valid CostAssignmentMethod
func (m CostAssignmentMethod) IsValid() bool {
	return m == CostAssignmentManual || m == CostAssignmentByMarketValue
}

// ReceiveStatus tracks receiving progress of a single line
type ReceiveStatus string

const (
	ReceiveStatusPending  ReceiveStatus = "pending"
	ReceiveStatusPartial  ReceiveStatus = "partial"
	ReceiveStatusReceived ReceiveStatus = "received"
	ReceiveStatusShort    ReceiveStatus = "short"
)

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID                    uuid.UUID            `gorm:"type:uuid;primary_key"`
	OrderID               uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductRef            string               `gorm:"type:varchar(100);not null"` // Opaque reference into the catalog
	Description           string               `gorm:"type:varchar(500)"`
	QuantityExpected      int                  `gorm:"not null"`
	QuantityReceived      int                  `gorm:"not null;default:0"`
	CostAssignmentMethod  CostAssignmentMethod `gorm:"type:varchar(20);not null"`
	AllocationBasis       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"` // Claimed unit cost (manual) or market estimate
	AllocationBasisSource string               `gorm:"type:varchar(100)"`                     // Provenance tag, informational only
	AllocatedUnitCost     *decimal.Decimal     `gorm:"type:decimal(18,2)"`                    // Nil until allocation runs
	ReceiveStatus         ReceiveStatus        `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt             time.Time
	UpdatedAt             time.Time // Doubles as the optimistic concurrency token for receiving
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new line item
func NewPurchaseOrderItem(orderID uuid.UUID, productRef, description string, quantityExpected int, method CostAssignmentMethod, basis decimal.Decimal, basisSource string, manualUnitCost *decimal.Decimal) (*PurchaseOrderItem, error) {
	if productRef == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_REF", "Product reference cannot be empty")
	}
	if quantityExpected < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Expected quantity cannot be negative")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_COST_METHOD", fmt.Sprintf("Unknown cost assignment method: %s", method))
	}
	if basis.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ALLOCATION_BASIS", "Allocation basis cannot be negative")
	}
	if manualUnitCost != nil && manualUnitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	item := &PurchaseOrderItem{
		ID:                    uuid.New(),
		OrderID:               orderID,
		ProductRef:            productRef,
		Description:           description,
		QuantityExpected:      quantityExpected,
		QuantityReceived:      0,
		CostAssignmentMethod:  method,
		AllocationBasis:       basis,
		AllocationBasisSource: basisSource,
		ReceiveStatus:         ReceiveStatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if manualUnitCost != nil {
		cost := manualUnitCost.Round(2)
		item.AllocatedUnitCost = &cost
	}
	return item, nil
}

// Remaining returns the outstanding receivable quantity, floored at zero
func (i *PurchaseOrderItem) Remaining() int {
	remaining := i.QuantityExpected - i.QuantityReceived
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ApplyReceipt increments the received quantity and recomputes the line's
// receive status. Quantities are monotonically non-decreasing.
func (i *PurchaseOrderItem) ApplyReceipt(quantity int, short bool, now time.Time) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
	}
	if quantity > i.Remaining() {
		return ErrQuantityExceedsRemaining
	}

	i.QuantityReceived += quantity
	switch {
	case i.QuantityReceived >= i.QuantityExpected:
		i.ReceiveStatus = ReceiveStatusReceived
	case short:
		i.ReceiveStatus = ReceiveStatusShort
	default:
		i.ReceiveStatus = ReceiveStatusPartial
	}
	i.UpdatedAt = now
	return nil
}

// IsFullyReceived returns true when nothing is left to receive
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.Remaining() == 0
}

// ConcurrencyToken returns the line's optimistic concurrency token at
// millisecond precision, matching the persisted column resolution.
func (i *PurchaseOrderItem) ConcurrencyToken() time.Time {
	return i.UpdatedAt.Truncate(time.Millisecond)
}

// TokenMatches compares a caller-supplied token against the line's current one
func (i *PurchaseOrderItem) TokenMatches(token time.Time) bool {
	return i.ConcurrencyToken().Equal(token.Truncate(time.Millisecond))
}

// PurchaseOrder represents a bulk merchandise lot being purchased.
// It owns the header cost fields, the line items, and the lock that
// freezes costs once allocation has run.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Source      string              `gorm:"type:varchar(100)"` // Where the lot came from (auction house, estate sale, ...)
	Status      PurchaseOrderStatus `gorm:"type:varchar(30);not null;default:'open'"`
	IsLocked    bool                `gorm:"not null;default:false"`
	Subtotal    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Tax         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Shipping    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Fees        decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Discounts   decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	LockedAt    *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// HeaderCosts carries the additive cost fields of a purchase order header
type HeaderCosts struct {
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Shipping  decimal.Decimal
	Fees      decimal.Decimal
	Discounts decimal.Decimal
}

// Validate checks that no cost field is negative
func (c HeaderCosts) Validate() error {
	for name, v := range map[string]decimal.Decimal{
		"subtotal": c.Subtotal, "tax": c.Tax, "shipping": c.Shipping,
		"fees": c.Fees, "discounts": c.Discounts,
	} {
		if v.IsNegative() {
			return shared.NewDomainError("INVALID_COST_FIELD", fmt.Sprintf("Cost field %s cannot be negative", name))
		}
	}
	return nil
}

// NewPurchaseOrder creates a new purchase order in the open, unlocked state
func NewPurchaseOrder(orderNumber, source string, costs HeaderCosts) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if err := costs.Validate(); err != nil {
		return nil, err
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Source:            source,
		Status:            PurchaseOrderStatusOpen,
		IsLocked:          false,
		Subtotal:          costs.Subtotal,
		Tax:               costs.Tax,
		Shipping:          costs.Shipping,
		Fees:              costs.Fees,
		Discounts:         costs.Discounts,
		Items:             make([]PurchaseOrderItem, 0),
	}, nil
}

// TotalCost returns the derived lot cost: subtotal + tax + shipping + fees - discounts
func (o *PurchaseOrder) TotalCost() decimal.Decimal {
	return o.Subtotal.Add(o.Tax).Add(o.Shipping).Add(o.Fees).Sub(o.Discounts)
}

// TotalCostMoney returns the total cost as Money in the default currency
func (o *PurchaseOrder) TotalCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalCost())
}

// UpdateHeader replaces the header cost fields and source.
// Only allowed while the order is unlocked.
func (o *PurchaseOrder) UpdateHeader(source string, costs HeaderCosts) error {
	if o.IsLocked {
		return ErrOrderLocked
	}
	if err := costs.Validate(); err != nil {
		return err
	}

	o.Source = source
	o.Subtotal = costs.Subtotal
	o.Tax = costs.Tax
	o.Shipping = costs.Shipping
	o.Fees = costs.Fees
	o.Discounts = costs.Discounts
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// AddItem adds a new line to the order. Only allowed while unlocked.
func (o *PurchaseOrder) AddItem(productRef, description string, quantityExpected int, method CostAssignmentMethod, basis decimal.Decimal, basisSource string, manualUnitCost *decimal.Decimal) (*PurchaseOrderItem, error) {
	if o.IsLocked {
		return nil, ErrOrderLocked
	}

	item, err := NewPurchaseOrderItem(o.ID, productRef, description, quantityExpected, method, basis, basisSource, manualUnitCost)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return item, nil
}

// UpdateItem replaces a line's editable fields. Only allowed while unlocked.
func (o *PurchaseOrder) UpdateItem(itemID uuid.UUID, productRef, description string, quantityExpected int, method CostAssignmentMethod, basis decimal.Decimal, basisSource string, manualUnitCost *decimal.Decimal) error {
	if o.IsLocked {
		return ErrOrderLocked
	}

	item := o.GetItem(itemID)
	if item == nil {
		return ErrLineNotFound
	}
	if productRef == "" {
		return shared.NewDomainError("INVALID_PRODUCT_REF", "Product reference cannot be empty")
	}
	if quantityExpected < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Expected quantity cannot be negative")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_COST_METHOD", fmt.Sprintf("Unknown cost assignment method: %s", method))
	}
	if basis.IsNegative() {
		return shared.NewDomainError("INVALID_ALLOCATION_BASIS", "Allocation basis cannot be negative")
	}
	if manualUnitCost != nil && manualUnitCost.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}

	item.ProductRef = productRef
	item.Description = description
	item.QuantityExpected = quantityExpected
	item.CostAssignmentMethod = method
	item.AllocationBasis = basis
	item.AllocationBasisSource = basisSource
	if manualUnitCost != nil {
		cost := manualUnitCost.Round(2)
		item.AllocatedUnitCost = &cost
	} else if method == CostAssignmentByMarketValue {
		item.AllocatedUnitCost = nil
	}
	item.UpdatedAt = time.Now()

	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// RemoveItem deletes a line from the order. Only allowed while unlocked.
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if o.IsLocked {
		return ErrOrderLocked
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return ErrLineNotFound
}

// Lock freezes the order after allocation has run. The allocations map
// carries the engine-computed unit cost per market-value line; manual
// lines keep their user-supplied cost untouched.
func (o *PurchaseOrder) Lock(allocations map[uuid.UUID]decimal.Decimal) error {
	if o.IsLocked {
		return ErrOrderLocked
	}

	now := time.Now()
	for idx := range o.Items {
		item := &o.Items[idx]
		if cost, ok := allocations[item.ID]; ok {
			rounded := cost.Round(2)
			item.AllocatedUnitCost = &rounded
			item.UpdatedAt = now
		}
	}

	o.IsLocked = true
	o.LockedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// GetItem returns the line with the given ID, or nil if not found
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// RefreshStatus recomputes the aggregate receiving status from the lines.
// Status only ever advances, never reverses.
func (o *PurchaseOrder) RefreshStatus() {
	switch {
	case len(o.Items) > 0 && o.allItemsReceived():
		o.Status = PurchaseOrderStatusReceived
	case o.hasReceivedAnyGoods():
		o.Status = PurchaseOrderStatusPartiallyReceived
	}
}

func (o *PurchaseOrder) allItemsReceived() bool {
	for idx := range o.Items {
		if !o.Items[idx].IsFullyReceived() {
			return false
		}
	}
	return true
}

func (o *PurchaseOrder) hasReceivedAnyGoods() bool {
	for idx := range o.Items {
		if o.Items[idx].QuantityReceived > 0 {
			return true
		}
	}
	return false
}

// TotalExpectedQuantity returns the sum of expected quantities across lines
func (o *PurchaseOrder) TotalExpectedQuantity() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].QuantityExpected
	}
	return total
}

// TotalReceivedQuantity returns the sum of received quantities across lines
func (o *PurchaseOrder) TotalReceivedQuantity() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].QuantityReceived
	}
	return total
}

// TotalRemainingQuantity returns the sum of outstanding quantities across lines
func (o *PurchaseOrder) TotalRemainingQuantity() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].Remaining()
	}
	return total
}

// ReceiveProgress returns the receiving completion as a percentage
func (o *PurchaseOrder) ReceiveProgress() decimal.Decimal {
	expected := o.TotalExpectedQuantity()
	if expected == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(o.TotalReceivedQuantity())).
		Div(decimal.NewFromInt(int64(expected))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// ItemCount returns the number of lines on the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// IsOpen returns true if no goods have been received yet
func (o *PurchaseOrder) IsOpen() bool {
	return o.Status == PurchaseOrderStatusOpen
}

// IsFullyReceived returns true when every line is complete
func (o *PurchaseOrder) IsFullyReceived() bool {
	return o.Status == PurchaseOrderStatusReceived
}

// CanModify returns true while header and line edits are still allowed
func (o *PurchaseOrder) CanModify() bool {
	return !o.IsLocked
}

// CanReceive returns true once the order is locked and costs are fixed
func (o *PurchaseOrder) CanReceive() bool {
	return o.IsLocked
}
