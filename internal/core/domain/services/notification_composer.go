package services

import (
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
)

// StatusChange is the input of NotificationComposer.Compose.
type StatusChange struct {
	Order     *order.Order
	OldStatus order.Status
	NewStatus order.Status
	ActorName string
	Reason    string
}

// NotificationComposer turns a status change into the notification one role
// receives.
//
// Copy is looked up by (new status, audience role) and falls back to a generic
// "status changed" text. Rejections and cancellations are high priority,
// everything else medium.
//
// Example usage:
//
//	composer := services.NewNotificationComposer(kernel.NewUUID, kernel.SystemClock())
//	n, err := composer.Compose(services.StatusChange{
//	    Order:     o,
//	    OldStatus: order.Pending,
//	    NewStatus: order.Confirmed,
//	    ActorName: "Claire",
//	}, role.Client)
type NotificationComposer struct {
	newID func() kernel.UUID
	clock kernel.Clock
}

func NewNotificationComposer(newID func() kernel.UUID, clock kernel.Clock) NotificationComposer {
	return NotificationComposer{newID: newID, clock: clock}
}

// Compose builds the notification for audience. The client audience is the
// order's owner, never every client. Missing values render as empty text.
//
// Returns an error only when change.Order was not constructed or audience is
// not a canonical role.
func (c NotificationComposer) Compose(change StatusChange, audience role.Role) (*notification.Notification, error) {
	if err := change.Order.Validate(); err != nil {
		return nil, err
	}
	if err := audience.Validate(); err != nil {
		return nil, err
	}

	tpl, ok := templates[templateKey{status: change.NewStatus, role: audience}]
	if !ok {
		tpl = genericTemplate
	}

	replacer := strings.NewReplacer(
		placeholderNumber, change.Order.Number(),
		placeholderOld, string(change.OldStatus),
		placeholderNew, string(change.NewStatus),
		placeholderActor, change.ActorName,
		placeholderReason, change.Reason,
	)

	return notification.NewNotification(notification.Snapshot{
		ID:        c.newID(),
		Type:      notification.TypeOrderStatusChanged,
		Title:     strings.TrimSpace(replacer.Replace(tpl.title)),
		Message:   strings.TrimSpace(replacer.Replace(tpl.message)),
		CreatedAt: c.now(),
		Priority:  PriorityFor(change.NewStatus),
		Category:  notification.CategoryOrder,
		Target:    TargetFor(change.Order, audience),
		Payload: notification.Payload{
			OrderID:     change.Order.ID(),
			OrderNumber: change.Order.Number(),
			OldStatus:   change.OldStatus,
			NewStatus:   change.NewStatus,
			Reason:      change.Reason,
			ActorName:   change.ActorName,
		},
	})
}

// PriorityFor returns the priority of notifications about reaching status.
func PriorityFor(status order.Status) notification.Priority {
	if highPriority[status] {
		return notification.PriorityHigh
	}
	return notification.PriorityMedium
}

// TargetFor maps an audience role to its delivery target for o.
func TargetFor(o *order.Order, audience role.Role) notification.Target {
	if audience == role.Client {
		return notification.UserTarget(o.ClientID())
	}
	return notification.RoleTarget(audience)
}

func (c NotificationComposer) now() time.Time {
	if c.clock == nil {
		return time.Now().UTC()
	}
	return c.clock()
}
