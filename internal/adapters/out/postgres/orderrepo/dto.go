// Package orderrepo maps the order aggregate to the orders table.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row shape of an order. Status is stored by key so the table
// stays readable and filterable from SQL.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number          string    `gorm:"size:64;uniqueIndex;not null"`
	Status          string    `gorm:"size:32;index;not null"`
	ClientID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Total           int64     `gorm:"not null"`
	TrackingNumber  string    `gorm:"size:128"`
	CreatedAt       time.Time `gorm:"not null"`
	StatusChangedAt *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CompletedAt     *time.Time
}

// TableName overrides GORM's default naming.
func (OrderDTO) TableName() string {
	return "orders"
}

// mutableColumns are the columns a status transition may change.
var mutableColumns = []string{"status", "status_changed_at", "tracking_number", "shipped_at", "delivered_at", "completed_at"}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	return OrderDTO{
		ID:              s.ID.Bytes(),
		Number:          s.Number,
		Status:          string(s.Status),
		ClientID:        s.ClientID.Bytes(),
		Total:           s.Total,
		TrackingNumber:  s.TrackingNumber,
		CreatedAt:       s.CreatedAt.UTC(),
		StatusChangedAt: utc(&s.StatusChangedAt),
		ShippedAt:       utc(s.ShippedAt),
		DeliveredAt:     utc(s.DeliveredAt),
		CompletedAt:     utc(s.CompletedAt),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var changedAt time.Time
	if dto.StatusChangedAt != nil {
		changedAt = dto.StatusChangedAt.UTC()
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          dto.Number,
		Status:          order.Status(dto.Status),
		ClientID:        clientID,
		Total:           dto.Total,
		TrackingNumber:  dto.TrackingNumber,
		CreatedAt:       dto.CreatedAt.UTC(),
		StatusChangedAt: changedAt,
		ShippedAt:       utc(dto.ShippedAt),
		DeliveredAt:     utc(dto.DeliveredAt),
		CompletedAt:     utc(dto.CompletedAt),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
