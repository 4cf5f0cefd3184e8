package queries

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// InboxReader reads a user's stored notifications.
type InboxReader interface {
	ListForUser(ctx context.Context, userID kernel.UUID, filter notification.InboxFilter) ([]notification.InboxEntry, error)
}

// ListNotificationsQuery lets a user pick up notifications missed while
// offline.
type ListNotificationsQuery struct {
	userID kernel.UUID
	filter notification.InboxFilter
	guard  guard.ConstructorGuard
}

func NewListNotificationsQuery(userID kernel.UUID, filter notification.InboxFilter) (ListNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	if filter.Limit == 0 {
		filter.Limit = action.DefaultQueryLimit
	}
	if filter.Limit < 1 || filter.Limit > action.MaxQueryLimit {
		return ListNotificationsQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 1, action.MaxQueryLimit)
	}
	return ListNotificationsQuery{userID: userID, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

func (q ListNotificationsQuery) Filter() notification.InboxFilter {
	return q.filter
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// NotificationResponse is one inbox entry.
type NotificationResponse struct {
	Notification notification.Snapshot
	ReadAt       *time.Time
}

type ListNotificationsQueryHandler struct {
	inbox InboxReader
}

func NewListNotificationsQueryHandler(inbox InboxReader) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{inbox: inbox}
}

func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.inbox.ListForUser(ctx, query.UserID(), query.Filter())
	if err != nil {
		return nil, err
	}

	result := make([]NotificationResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, NotificationResponse{Notification: e.Notification.Snapshot(), ReadAt: e.ReadAt})
	}
	return result, nil
}
