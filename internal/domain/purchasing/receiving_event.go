package purchasing

import (
	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/shared"
)

// ReceivingEventType classifies an entry in the receiving audit trail
type ReceivingEventType string

const (
	ReceivingEventReceive ReceivingEventType = "receive"
	ReceivingEventDamage  ReceivingEventType = "damage"
	ReceivingEventShort   ReceivingEventType = "short"
)

// ReceivingEvent is an append-only audit record written for every
// committed receipt. Events are never updated or deleted.
type ReceivingEvent struct {
	shared.BaseEntity
	OrderID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	EventType ReceivingEventType `gorm:"type:varchar(20);not null"`
	Quantity  int                `gorm:"not null"`
	Note      string             `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReceivingEvent) TableName() string {
	return "receiving_events"
}

// NewReceivingEvent creates an audit event for one receipt line
func NewReceivingEvent(orderID, itemID uuid.UUID, eventType ReceivingEventType, quantity int, note string) *ReceivingEvent {
	return &ReceivingEvent{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ItemID:     itemID,
		EventType:  eventType,
		Quantity:   quantity,
		Note:       note,
	}
}

// EventsForReceipt expands one applied receipt into its audit events:
// always a receive event, plus damage/short annotations when flagged.
func EventsForReceipt(orderID uuid.UUID, receipt AppliedReceipt) []*ReceivingEvent {
	events := []*ReceivingEvent{
		NewReceivingEvent(orderID, receipt.Item.ID, ReceivingEventReceive, receipt.Delta, ""),
	}
	if receipt.Damaged {
		events = append(events, NewReceivingEvent(orderID, receipt.Item.ID, ReceivingEventDamage, receipt.Delta, "Goods arrived damaged"))
	}
	if receipt.Short {
		events = append(events, NewReceivingEvent(orderID, receipt.Item.ID, ReceivingEventShort, receipt.Delta, "Receipt flagged short by receiver"))
	}
	return events
}
