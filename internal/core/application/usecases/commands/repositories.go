// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/application/notifications"
	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ActionLogFactory provides access to the audit log within a transaction.
	ActionLogFactory interface {
		ActionLog() ports.ActionLog
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WorkflowUoW covers a status transition: the order update and its audit
	// entry commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderRepository().UpdateIfStatus(ctx, next, current.Status())
	//   err = uow.ActionLog().Append(ctx, act)
	//
	//   err = uow.Commit(ctx)
	WorkflowUoW interface {
		TxManager
		OrderRepoFactory
		ActionLogFactory
	}

	// WorkflowUoWFactory creates new workflow unit of work instances.
	WorkflowUoWFactory interface {
		Create() WorkflowUoW
	}
)

// NotificationQueue accepts notification batches for background delivery.
type NotificationQueue interface {
	Enqueue(ctx context.Context, batch notifications.Batch) error
}
