package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns *errs.ObjectNotFoundError when no order has this id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateIfStatus stores aggregate only if the stored order is still in
	// expected status. Returns *errs.ConflictError when another writer moved
	// the order first and *errs.ObjectNotFoundError when it no longer exists.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
