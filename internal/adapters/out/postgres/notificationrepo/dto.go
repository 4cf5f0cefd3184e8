// Package notificationrepo stores notification inbox rows, one per recipient.
package notificationrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is a notification as delivered to one recipient. The
// composite key makes repeated saves of the same delivery idempotent.
type NotificationDTO struct {
	NotificationID uuid.UUID            `gorm:"type:uuid;primaryKey"`
	RecipientID    uuid.UUID            `gorm:"type:uuid;primaryKey;index:idx_notifications_inbox,priority:1"`
	Type           string               `gorm:"size:64;not null"`
	Title          string               `gorm:"size:255;not null"`
	Message        string               `gorm:"type:text"`
	Priority       string               `gorm:"size:16;not null"`
	Category       string               `gorm:"size:32"`
	Target         string               `gorm:"size:64;not null"`
	Payload        notification.Payload `gorm:"type:jsonb;serializer:json"`
	CreatedAt      time.Time            `gorm:"index;index:idx_notifications_inbox,priority:2;not null"`
	ReadAt         *time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification, recipientID kernel.UUID) NotificationDTO {
	s := n.Snapshot()
	return NotificationDTO{
		NotificationID: s.ID.Bytes(),
		RecipientID:    recipientID.Bytes(),
		Type:           s.Type,
		Title:          s.Title,
		Message:        s.Message,
		Priority:       string(s.Priority),
		Category:       s.Category,
		Target:         s.Target.String(),
		Payload:        s.Payload,
		CreatedAt:      s.CreatedAt.UTC(),
	}
}

func toDomain(dto NotificationDTO) (notification.InboxEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.NotificationID[:])
	if err != nil {
		return notification.InboxEntry{}, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return notification.InboxEntry{}, err
	}
	target, err := notification.ParseTarget(dto.Target)
	if err != nil {
		return notification.InboxEntry{}, err
	}

	n, err := notification.NewNotification(notification.Snapshot{
		ID:        id,
		Type:      dto.Type,
		Title:     dto.Title,
		Message:   dto.Message,
		CreatedAt: dto.CreatedAt.UTC(),
		Priority:  notification.Priority(dto.Priority),
		Category:  dto.Category,
		Target:    target,
		Payload:   dto.Payload,
	})
	if err != nil {
		return notification.InboxEntry{}, err
	}

	var readAt *time.Time
	if dto.ReadAt != nil {
		v := dto.ReadAt.UTC()
		readAt = &v
	}

	return notification.InboxEntry{Notification: n, RecipientID: recipientID, ReadAt: readAt}, nil
}
