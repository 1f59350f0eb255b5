package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/purchasing"
	"github.com/resale/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order business operations:
// header and line CRUD while unlocked, and the allocation+lock transition.
type PurchaseOrderService struct {
	orderRepo purchasing.PurchaseOrderRepository
	txScope   TransactionScope
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo purchasing.PurchaseOrderRepository, txScope TransactionScope) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// Create creates a new purchase order with an optional initial set of lines
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	orderNumber, err := s.generateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := purchasing.NewPurchaseOrder(orderNumber, req.Source, purchasing.HeaderCosts{
		Subtotal:  req.Subtotal,
		Tax:       req.Tax,
		Shipping:  req.Shipping,
		Fees:      req.Fees,
		Discounts: req.Discounts,
	})
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		if _, err := order.AddItem(
			line.ProductRef,
			line.Description,
			line.QuantityExpected,
			purchasing.CostAssignmentMethod(line.CostAssignmentMethod),
			line.AllocationBasis,
			line.AllocationBasisSource,
			line.ManualUnitCost,
		); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order with its lines
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) (*shared.Paginated[PurchaseOrderListItemResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.IsLocked != nil {
		domainFilter.Filters["is_locked"] = *filter.IsLocked
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToPurchaseOrderListItemResponses(orders), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateHeader updates the header cost fields of an unlocked order
func (s *PurchaseOrderService) UpdateHeader(ctx context.Context, orderID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateHeader(req.Source, purchasing.HeaderCosts{
		Subtotal:  req.Subtotal,
		Tax:       req.Tax,
		Shipping:  req.Shipping,
		Fees:      req.Fees,
		Discounts: req.Discounts,
	}); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateHeader(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// AddItem adds a line to an unlocked order
func (s *PurchaseOrderService) AddItem(ctx context.Context, orderID uuid.UUID, req LineItemInput) (*PurchaseOrderItemResponse, error) {
	var response PurchaseOrderItemResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		item, err := order.AddItem(
			req.ProductRef,
			req.Description,
			req.QuantityExpected,
			purchasing.CostAssignmentMethod(req.CostAssignmentMethod),
			req.AllocationBasis,
			req.AllocationBasisSource,
			req.ManualUnitCost,
		)
		if err != nil {
			return err
		}

		if err := repos.OrderRepo().SaveItem(ctx, item); err != nil {
			return err
		}
		if err := repos.OrderRepo().UpdateHeader(ctx, order); err != nil {
			return err
		}

		response = ToPurchaseOrderItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// UpdateItem updates a line of an unlocked order
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req LineItemInput) (*PurchaseOrderItemResponse, error) {
	var response PurchaseOrderItemResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.UpdateItem(
			itemID,
			req.ProductRef,
			req.Description,
			req.QuantityExpected,
			purchasing.CostAssignmentMethod(req.CostAssignmentMethod),
			req.AllocationBasis,
			req.AllocationBasisSource,
			req.ManualUnitCost,
		); err != nil {
			return err
		}

		item := order.GetItem(itemID)
		if err := repos.OrderRepo().SaveItem(ctx, item); err != nil {
			return err
		}
		if err := repos.OrderRepo().UpdateHeader(ctx, order); err != nil {
			return err
		}

		response = ToPurchaseOrderItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// RemoveItem deletes a line from an unlocked order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.RemoveItem(itemID); err != nil {
			return err
		}

		if err := repos.OrderRepo().DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return repos.OrderRepo().UpdateHeader(ctx, order)
	})
}

// Lock runs the allocation engine over the order snapshot and freezes the
// order, all inside one transaction. Any allocation error rolls back with
// no partial writes visible.
func (s *PurchaseOrderService) Lock(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	var response PurchaseOrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.IsLocked {
			return purchasing.ErrOrderLocked
		}

		allocations, err := purchasing.AllocateCosts(order)
		if err != nil {
			return err
		}
		if err := order.Lock(allocations); err != nil {
			return err
		}

		for idx := range order.Items {
			if err := repos.OrderRepo().SaveItem(ctx, &order.Items[idx]); err != nil {
				return err
			}
		}
		if err := repos.OrderRepo().UpdateHeader(ctx, order); err != nil {
			return err
		}

		response = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// generateOrderNumber builds the next PO-YYYY-NNNNN order number
func (s *PurchaseOrderService) generateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	seq, err := s.orderRepo.NextOrderSequence(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PO-%d-%05d", year, seq), nil
}
