package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptRequest is one line of a receiving commit: how many units arrived
// for a line, condition flags, and the concurrency token the caller last saw.
type ReceiptRequest struct {
	ItemID       uuid.UUID
	QtyToReceive int
	Damaged      bool
	Short        bool
	UpdatedAt    time.Time
}

// StagingLine is one row of the read-only staging projection
type StagingLine struct {
	ItemID            uuid.UUID
	ProductRef        string
	Description       string
	QuantityExpected  int
	QuantityReceived  int
	Remaining         int
	AllocatedUnitCost *decimal.Decimal
	ReceiveStatus     ReceiveStatus
	UpdatedAt         time.Time
}

// ReceivingProgress summarizes receiving completion across the whole order
type ReceivingProgress struct {
	TotalExpected  int
	TotalReceived  int
	TotalRemaining int
	Percent        decimal.Decimal
}

// StagingView projects the outstanding receivable quantities per line.
// The order must be locked: costs are fixed before goods are received.
func StagingView(order *PurchaseOrder) ([]StagingLine, error) {
	if !order.CanReceive() {
		return nil, ErrOrderNotLocked
	}

	lines := make([]StagingLine, 0, len(order.Items))
	for idx := range order.Items {
		item := &order.Items[idx]
		lines = append(lines, StagingLine{
			ItemID:            item.ID,
			ProductRef:        item.ProductRef,
			Description:       item.Description,
			QuantityExpected:  item.QuantityExpected,
			QuantityReceived:  item.QuantityReceived,
			Remaining:         item.Remaining(),
			AllocatedUnitCost: item.AllocatedUnitCost,
			ReceiveStatus:     item.ReceiveStatus,
			UpdatedAt:         item.ConcurrencyToken(),
		})
	}
	return lines, nil
}

// AppliedReceipt is one line actually received by a committed batch
type AppliedReceipt struct {
	Item       *PurchaseOrderItem
	Delta      int
	Damaged    bool
	Short      bool
	PriorToken time.Time // Concurrency token the line held before this commit
}

// ReceiptResult is the outcome of a successfully applied receiving commit
type ReceiptResult struct {
	Applied   []AppliedReceipt
	NewStatus PurchaseOrderStatus
	Progress  ReceivingProgress
}

// CommitReceipt validates a receiving batch against the in-memory order
// snapshot and, only if every line passes, applies all of it. Validation
// failures leave the order untouched so the caller's transaction can roll
// back cleanly; all-or-nothing is the contract, never partial application.
func CommitReceipt(order *PurchaseOrder, requests []ReceiptRequest, now time.Time) (*ReceiptResult, error) {
	if !order.CanReceive() {
		return nil, ErrOrderNotLocked
	}

	// Validate everything before any write.
	effective := 0
	for _, req := range requests {
		item := order.GetItem(req.ItemID)
		if item == nil {
			return nil, ErrLineNotFound
		}
		if req.QtyToReceive < 0 {
			return nil, ErrQuantityExceedsRemaining
		}
		if !item.TokenMatches(req.UpdatedAt) {
			return nil, ErrStaleWrite
		}
		if req.QtyToReceive > item.Remaining() {
			return nil, ErrQuantityExceedsRemaining
		}
		if req.QtyToReceive > 0 {
			effective++
		}
	}
	if effective == 0 {
		return nil, ErrNothingToReceive
	}

	applied := make([]AppliedReceipt, 0, effective)
	for _, req := range requests {
		if req.QtyToReceive == 0 {
			continue
		}
		item := order.GetItem(req.ItemID)
		priorToken := item.ConcurrencyToken()
		if err := item.ApplyReceipt(req.QtyToReceive, req.Short, now); err != nil {
			return nil, err
		}
		applied = append(applied, AppliedReceipt{
			Item:       item,
			Delta:      req.QtyToReceive,
			Damaged:    req.Damaged,
			Short:      req.Short,
			PriorToken: priorToken,
		})
	}

	order.RefreshStatus()
	order.UpdatedAt = now

	return &ReceiptResult{
		Applied:   applied,
		NewStatus: order.Status,
		Progress: ReceivingProgress{
			TotalExpected:  order.TotalExpectedQuantity(),
			TotalReceived:  order.TotalReceivedQuantity(),
			TotalRemaining: order.TotalRemainingQuantity(),
			Percent:        order.ReceiveProgress(),
		},
	}, nil
}
