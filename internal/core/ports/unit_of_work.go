package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per submission or retry.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork wraps one database transaction. An order and its lines are
// written inside a single unit, so a failed submission never leaves a
// partial order behind.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error
	// Rollback after Commit returns an error that deferred calls ignore.
	Rollback(ctx context.Context) error

	// Repositories bound to the transaction, or to the pool outside of one.
	OrderRepository() OrderRepository
	StoreRepository() StoreRepository
}
