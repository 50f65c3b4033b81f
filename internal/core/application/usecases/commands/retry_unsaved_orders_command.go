package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrRetryUnsavedOrdersCommandIsNotConstructed = errors.New(
	"RetryUnsavedOrdersCommand must be created via NewRetryUnsavedOrdersCommand constructor",
)

// DefaultRetryBatchSize bounds the work of one retry run.
const DefaultRetryBatchSize = 50

// RetryUnsavedOrdersCommand drains up to BatchSize orders from the unsaved
// queue.
type RetryUnsavedOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRetryUnsavedOrdersCommand(batchSize int) (RetryUnsavedOrdersCommand, error) {
	if batchSize <= 0 {
		batchSize = DefaultRetryBatchSize
	}
	return RetryUnsavedOrdersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RetryUnsavedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRetryUnsavedOrdersCommandIsNotConstructed)
}

func (c RetryUnsavedOrdersCommand) BatchSize() int {
	return c.batchSize
}
