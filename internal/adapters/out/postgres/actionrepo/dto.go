// Package actionrepo persists the audit trail in the actions table.
package actionrepo

import (
	"time"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"

	"github.com/google/uuid"
)

// ActionDTO is one audit row. Seq records insertion order and breaks ties
// between actions sharing a timestamp.
type ActionDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seq        int64          `gorm:"autoIncrement;uniqueIndex;not null"`
	OrderID    uuid.UUID      `gorm:"type:uuid;index:idx_actions_order_time,priority:1;not null"`
	ActorID    uuid.UUID      `gorm:"type:uuid;index;not null"`
	ActorRole  string         `gorm:"size:32;not null"`
	OldStatus  string         `gorm:"size:32;not null"`
	NewStatus  string         `gorm:"size:32;index;not null"`
	Reason     string         `gorm:"type:text"`
	OccurredAt time.Time      `gorm:"index;index:idx_actions_order_time,priority:2;not null"`
	Extra      map[string]any `gorm:"type:jsonb;serializer:json"`
}

func (ActionDTO) TableName() string {
	return "actions"
}

func fromDomain(a *action.Action) ActionDTO {
	s := a.Snapshot()
	return ActionDTO{
		ID:         s.ID.Bytes(),
		OrderID:    s.OrderID.Bytes(),
		ActorID:    s.ActorID.Bytes(),
		ActorRole:  string(s.ActorRole),
		OldStatus:  string(s.OldStatus),
		NewStatus:  string(s.NewStatus),
		Reason:     s.Reason,
		OccurredAt: s.OccurredAt.UTC(),
		Extra:      s.Extra,
	}
}

func toDomain(dto ActionDTO) (*action.Action, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return action.RestoreAction(action.Snapshot{
		ID:         id,
		OrderID:    orderID,
		ActorID:    actorID,
		ActorRole:  role.Role(dto.ActorRole),
		OldStatus:  order.Status(dto.OldStatus),
		NewStatus:  order.Status(dto.NewStatus),
		Reason:     dto.Reason,
		OccurredAt: dto.OccurredAt.UTC(),
		Extra:      dto.Extra,
	})
}

func toDomainList(dtos []ActionDTO) ([]*action.Action, error) {
	actions := make([]*action.Action, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}
