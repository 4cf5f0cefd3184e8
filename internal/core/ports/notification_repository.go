package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/role"
)

// NotificationRepository stores one inbox row per notification recipient so
// offline users can pick notifications up later.
type NotificationRepository interface {
	// Save stores n for every recipient. Saving the same notification for the
	// same recipient twice keeps a single row.
	Save(ctx context.Context, n *notification.Notification, recipients []kernel.UUID) error

	// ListForUser returns the recipient's entries, newest first.
	ListForUser(ctx context.Context, userID kernel.UUID, filter notification.InboxFilter) ([]notification.InboxEntry, error)

	// MarkRead sets the read time of one entry. Returns
	// *errs.ObjectNotFoundError when the user has no such notification.
	MarkRead(ctx context.Context, notificationID, userID kernel.UUID, at time.Time) error

	// DeleteOlderThan removes entries created before horizon.
	DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error)
}

// RecipientDirectory resolves a role to the users currently holding it.
type RecipientDirectory interface {
	UserIDsByRole(ctx context.Context, r role.Role) ([]kernel.UUID, error)
}

// RealtimeChannel delivers events to connected sessions joined to a room.
// Rooms are named "role:<role>" or "user:<id>".
type RealtimeChannel interface {
	Publish(ctx context.Context, room, event string, payload any) error
}
