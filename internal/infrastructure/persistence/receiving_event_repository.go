package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resale/backend/internal/domain/purchasing"
)

// GormReceivingEventRepository implements ReceivingEventRepository using GORM
type GormReceivingEventRepository struct {
	db *gorm.DB
}

// NewGormReceivingEventRepository creates a new GormReceivingEventRepository
func NewGormReceivingEventRepository(db *gorm.DB) *GormReceivingEventRepository {
	return &GormReceivingEventRepository{db: db}
}

// Save appends a receiving event to the audit trail
func (r *GormReceivingEventRepository) Save(ctx context.Context, event *purchasing.ReceivingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByOrder returns the receiving history of an order, oldest first
func (r *GormReceivingEventRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]purchasing.ReceivingEvent, error) {
	var events []purchasing.ReceivingEvent
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Ensure GormReceivingEventRepository implements ReceivingEventRepository
var _ purchasing.ReceivingEventRepository = (*GormReceivingEventRepository)(nil)
