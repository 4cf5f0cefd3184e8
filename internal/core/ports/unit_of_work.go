package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command. A UnitOfWork is
// never shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a write. Repositories obtained
// from it after Begin see and write through the same transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is open, including after Commit.
	// Handlers defer it right after Begin and ignore that error.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	// ActionLog shares the transaction with OrderRepository so an order
	// update and its audit entry are stored together or not at all.
	ActionLog() ActionLog
}
