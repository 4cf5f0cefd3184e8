package notification

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// InboxEntry is a notification as stored for one recipient.
type InboxEntry struct {
	Notification *Notification
	RecipientID  kernel.UUID
	ReadAt       *time.Time
}

func (e InboxEntry) IsRead() bool {
	return e.ReadAt != nil
}

// InboxFilter selects a recipient's entries. Since is exclusive.
type InboxFilter struct {
	Since      *time.Time
	UnreadOnly bool
	Limit      int
}
