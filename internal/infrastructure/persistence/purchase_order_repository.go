package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resale/backend/internal/domain/purchasing"
	"github.com/resale/backend/internal/domain/shared"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its lines by ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	var order purchasing.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds a purchase order by its human-readable number
func (r *GormPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*purchasing.PurchaseOrder, error) {
	var order purchasing.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds purchase orders with filtering and pagination
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	var orders []purchasing.PurchaseOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&purchasing.PurchaseOrder{}),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&purchasing.PurchaseOrder{}),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase order together with its lines
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *purchasing.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(order.Items))
		for i := range order.Items {
			currentItemIDs[i] = order.Items[i].ID
		}

		// Delete lines removed from the aggregate
		if len(currentItemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
				Delete(&purchasing.PurchaseOrderItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&purchasing.PurchaseOrderItem{}).Error; err != nil {
				return err
			}
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateHeader persists the header fields of an order without touching its lines
func (r *GormPurchaseOrderRepository) UpdateHeader(ctx context.Context, order *purchasing.PurchaseOrder) error {
	result := r.db.WithContext(ctx).
		Model(&purchasing.PurchaseOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"source":     order.Source,
			"status":     order.Status,
			"is_locked":  order.IsLocked,
			"subtotal":   order.Subtotal,
			"tax":        order.Tax,
			"shipping":   order.Shipping,
			"fees":       order.Fees,
			"discounts":  order.Discounts,
			"locked_at":  order.LockedAt,
			"version":    order.Version,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveItem creates or updates a single order line
func (r *GormPurchaseOrderRepository) SaveItem(ctx context.Context, item *purchasing.PurchaseOrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes a single order line
func (r *GormPurchaseOrderRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&purchasing.PurchaseOrderItem{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ApplyItemReceipt persists a received line with a compare-and-swap on the
// concurrency token. The write only lands when the stored updated_at still
// equals the token the caller read; otherwise another writer got there first
// and the batch fails with ErrStaleWrite.
func (r *GormPurchaseOrderRepository) ApplyItemReceipt(ctx context.Context, item *purchasing.PurchaseOrderItem, priorToken time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&purchasing.PurchaseOrderItem{}).
		Where("id = ? AND updated_at = ?", item.ID, priorToken).
		Updates(map[string]interface{}{
			"quantity_received": item.QuantityReceived,
			"receive_status":    item.ReceiveStatus,
			"updated_at":        item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return purchasing.ErrStaleWrite
	}
	return nil
}

// NextOrderSequence returns the next sequence number for order numbers of
// the given year, derived from the highest existing number.
func (r *GormPurchaseOrderRepository) NextOrderSequence(ctx context.Context, year int) (int64, error) {
	prefix := fmt.Sprintf("PO-%d-", year)

	var lastOrderNumber string
	err := r.db.WithContext(ctx).
		Model(&purchasing.PurchaseOrder{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &lastOrderNumber).Error
	if err != nil {
		return 0, err
	}

	if lastOrderNumber == "" {
		return 1, nil
	}

	parts := strings.Split(lastOrderNumber, "-")
	if len(parts) != 3 {
		return 1, nil
	}
	var lastNum int64
	if _, err := fmt.Sscanf(parts[2], "%d", &lastNum); err != nil {
		return 1, nil
	}
	return lastNum + 1, nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Ordering goes through a whitelist to keep user input out of the SQL
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR source ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_locked":
			query = query.Where("is_locked = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ purchasing.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
