package purchasing

import "github.com/resale/backend/internal/domain/shared"

// Allocation errors
var (
	ErrManualValueMissing = shared.NewDomainError("MANUAL_VALUE_MISSING", "Every manual line must carry an allocated unit cost before allocation")
	ErrManualExceedsTotal = shared.NewDomainError("MANUAL_EXCEEDS_TOTAL", "Manual line costs exceed the order total cost")
	ErrZeroWeightPool     = shared.NewDomainError("ZERO_WEIGHT_POOL", "Market-value lines exist but carry no usable allocation weight")
)

// Receiving errors
var (
	ErrLineNotFound             = shared.NewDomainError("LINE_NOT_FOUND", "Line does not belong to this purchase order")
	ErrStaleWrite               = shared.NewDomainError("STALE_WRITE", "Line was modified by another process, re-fetch staging data and retry")
	ErrQuantityExceedsRemaining = shared.NewDomainError("QUANTITY_EXCEEDS_REMAINING", "Quantity to receive exceeds the remaining quantity")
	ErrNothingToReceive         = shared.NewDomainError("NOTHING_TO_RECEIVE", "Commit contains no positive quantities to receive")
)

// Lifecycle errors
var (
	ErrOrderLocked    = shared.NewDomainError("PO_LOCKED", "Purchase order is locked and can no longer be modified")
	ErrOrderNotLocked = shared.NewDomainError("PO_NOT_LOCKED", "Purchase order must be locked before receiving")
)
