package purchasing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocateCosts distributes the order's total cost across its market-value
// lines, weighted by allocation_basis x quantity_expected. It is a pure
// function over the in-memory order snapshot: it returns the unit cost to
// write per market-value line, or a typed error, and never mutates the
// order. Manual lines pass through untouched and are not part of the
// returned write-set.
//
// Unit costs are rounded half-up to 2 decimal places per line; the
// resulting per-line totals may drift from the pool by a few cents on
// large lots. That drift is accepted, not corrected.
func AllocateCosts(order *PurchaseOrder) (map[uuid.UUID]decimal.Decimal, error) {
	totalCost := order.TotalCost()

	// Manual lines must already carry their user-supplied unit cost.
	manualTotal := decimal.Zero
	for idx := range order.Items {
		item := &order.Items[idx]
		if item.CostAssignmentMethod != CostAssignmentManual {
			continue
		}
		if item.AllocatedUnitCost == nil {
			return nil, ErrManualValueMissing
		}
		lineTotal := item.AllocatedUnitCost.Mul(decimal.NewFromInt(int64(item.QuantityExpected)))
		manualTotal = manualTotal.Add(lineTotal)
	}

	if manualTotal.GreaterThan(totalCost) {
		return nil, ErrManualExceedsTotal
	}

	pool := totalCost.Sub(manualTotal)

	// Weight each market-value line by basis x quantity. Lines with zero
	// quantity or a non-positive basis carry no weight and allocate to zero.
	marketLines := false
	poolWeight := decimal.Zero
	weights := make(map[uuid.UUID]decimal.Decimal)
	for idx := range order.Items {
		item := &order.Items[idx]
		if item.CostAssignmentMethod != CostAssignmentByMarketValue {
			continue
		}
		marketLines = true
		if item.QuantityExpected > 0 && item.AllocationBasis.IsPositive() {
			weight := item.AllocationBasis.Mul(decimal.NewFromInt(int64(item.QuantityExpected)))
			weights[item.ID] = weight
			poolWeight = poolWeight.Add(weight)
		}
	}

	// A populated market pool with zero total weight is ambiguous input,
	// not a valid "allocate everyone zero" case.
	if marketLines && poolWeight.IsZero() {
		return nil, ErrZeroWeightPool
	}

	allocations := make(map[uuid.UUID]decimal.Decimal)
	distribute := poolWeight.IsPositive() && pool.IsPositive()
	for idx := range order.Items {
		item := &order.Items[idx]
		if item.CostAssignmentMethod != CostAssignmentByMarketValue {
			continue
		}
		weight, weighted := weights[item.ID]
		if !distribute || !weighted || item.QuantityExpected == 0 {
			allocations[item.ID] = decimal.Zero
			continue
		}
		allocatedTotal := pool.Mul(weight.Div(poolWeight))
		unitCost := allocatedTotal.Div(decimal.NewFromInt(int64(item.QuantityExpected))).Round(2)
		allocations[item.ID] = unitCost
	}

	return allocations, nil
}
