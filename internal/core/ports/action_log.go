package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
)

// ActionLog is the append-only audit store of status transitions.
type ActionLog interface {
	// Append records one action. Actions are never updated.
	Append(ctx context.Context, a *action.Action) error

	// OrderHistory returns every action of an order, newest first. Actions
	// sharing a timestamp are ordered by insertion, latest first.
	OrderHistory(ctx context.Context, orderID kernel.UUID) ([]*action.Action, error)

	// Query returns actions matching filter, newest first, at most filter.Limit.
	Query(ctx context.Context, filter action.Filter) ([]*action.Action, error)

	// DeleteOlderThan removes actions that occurred before horizon and returns
	// how many were removed. Only the retention command calls it.
	DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error)
}
