package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// NotificationMarker records that a user has read a notification.
type NotificationMarker interface {
	MarkRead(ctx context.Context, notificationID, userID kernel.UUID, at time.Time) error
}

type MarkNotificationReadCommandHandler struct {
	notifications NotificationMarker
	clock         kernel.Clock
}

func NewMarkNotificationReadCommandHandler(notifications NotificationMarker, clock kernel.Clock) MarkNotificationReadCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return MarkNotificationReadCommandHandler{notifications: notifications, clock: clock}
}

// Handle returns *errs.ObjectNotFoundError when the user never received the
// notification. Already read entries are left unchanged.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.notifications.MarkRead(ctx, cmd.NotificationID(), cmd.UserID(), h.clock()); err != nil {
		return storageFailure("mark notification read", err)
	}
	return nil
}
