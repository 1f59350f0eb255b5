package purchasing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/inventory"
	"github.com/resale/backend/internal/domain/purchasing"
	"github.com/resale/backend/internal/domain/shared"
)

// ReceivingService reconciles physical receipt of goods against a locked
// purchase order and materializes inventory records, one per received line.
type ReceivingService struct {
	orderRepo purchasing.PurchaseOrderRepository
	eventRepo purchasing.ReceivingEventRepository
	txScope   TransactionScope
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(orderRepo purchasing.PurchaseOrderRepository, eventRepo purchasing.ReceivingEventRepository, txScope TransactionScope) *ReceivingService {
	return &ReceivingService{
		orderRepo: orderRepo,
		eventRepo: eventRepo,
		txScope:   txScope,
	}
}

// GetStagingView returns the outstanding receivable quantities per line,
// including the concurrency tokens a subsequent commit must echo back.
func (s *ReceivingService) GetStagingView(ctx context.Context, orderID uuid.UUID) (*StagingViewResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := purchasing.StagingView(order)
	if err != nil {
		return nil, err
	}

	responseLines := make([]StagingLineResponse, len(lines))
	for i, line := range lines {
		responseLines[i] = ToStagingLineResponse(line)
	}

	return &StagingViewResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Lines:       responseLines,
		Progress: ToReceivingProgressResponse(purchasing.ReceivingProgress{
			TotalExpected:  order.TotalExpectedQuantity(),
			TotalReceived:  order.TotalReceivedQuantity(),
			TotalRemaining: order.TotalRemainingQuantity(),
			Percent:        order.ReceiveProgress(),
		}),
	}, nil
}

// Commit applies a receiving batch as one transaction: validates every line
// against the current snapshot, increments received quantities under a
// compare-and-swap on each line's token, materializes inventory, and appends
// the audit trail. Any failure rolls the whole batch back.
func (s *ReceivingService) Commit(ctx context.Context, orderID uuid.UUID, req CommitReceivingRequest) (*CommitReceivingResponse, error) {
	var response CommitReceivingResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		requests := make([]purchasing.ReceiptRequest, len(req.Items))
		for i, item := range req.Items {
			requests[i] = purchasing.ReceiptRequest{
				ItemID:       item.ItemID,
				QtyToReceive: item.QtyToReceive,
				Damaged:      item.Damaged,
				Short:        item.Short,
				UpdatedAt:    item.UpdatedAt,
			}
		}

		result, err := purchasing.CommitReceipt(order, requests, time.Now())
		if err != nil {
			return err
		}

		inventoryIDs := make([]uuid.UUID, 0, len(result.Applied))
		for _, receipt := range result.Applied {
			// The SQL-level CAS backs up the in-memory token check: a
			// concurrent writer between read and update still loses here.
			if err := repos.OrderRepo().ApplyItemReceipt(ctx, receipt.Item, receipt.PriorToken); err != nil {
				return err
			}

			inventoryID, err := s.materialize(ctx, repos, order, receipt)
			if err != nil {
				return err
			}
			inventoryIDs = append(inventoryIDs, inventoryID)

			for _, event := range purchasing.EventsForReceipt(order.ID, receipt) {
				if err := repos.EventRepo().Save(ctx, event); err != nil {
					return err
				}
			}
		}

		if err := repos.OrderRepo().UpdateHeader(ctx, order); err != nil {
			return err
		}

		response = CommitReceivingResponse{
			InventoryItemIDs: inventoryIDs,
			NewStatus:        string(result.NewStatus),
			Progress:         ToReceivingProgressResponse(result.Progress),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListEvents returns the receiving audit trail for an order, oldest first
func (s *ReceivingService) ListEvents(ctx context.Context, orderID uuid.UUID) ([]ReceivingEventResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToReceivingEventResponses(events), nil
}

// materialize creates or increments the inventory record for a received line
func (s *ReceivingService) materialize(ctx context.Context, repos TransactionalRepositories, order *purchasing.PurchaseOrder, receipt purchasing.AppliedReceipt) (uuid.UUID, error) {
	existing, err := repos.InventoryRepo().FindByOrderItem(ctx, receipt.Item.ID)
	switch {
	case err == nil:
		if err := existing.Receive(receipt.Delta, receipt.Damaged); err != nil {
			return uuid.Nil, err
		}
		if err := repos.InventoryRepo().Save(ctx, existing); err != nil {
			return uuid.Nil, err
		}
		return existing.ID, nil

	case errors.Is(err, shared.ErrNotFound):
		sku := inventory.SellerSKUFor(order.OrderNumber, receipt.Item.ID)
		created, err := inventory.NewInventoryItem(order.ID, receipt.Item.ID, sku, receipt.Item.ProductRef, receipt.Delta, receipt.Damaged)
		if err != nil {
			return uuid.Nil, err
		}
		if err := repos.InventoryRepo().Save(ctx, created); err != nil {
			return uuid.Nil, err
		}
		return created.ID, nil

	default:
		return uuid.Nil, err
	}
}
