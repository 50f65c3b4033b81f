package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
)

// ErrQueueIsEmpty is returned by UnsavedOrderQueue.Pop when nothing is waiting.
var ErrQueueIsEmpty = errors.New("unsaved order queue is empty")

// UnsavedOrderQueue holds orders whose persistence failed at submission time
// until the retry job stores them.
type UnsavedOrderQueue interface {
	Push(ctx context.Context, o *order.Order) error
	// Pop removes and returns the oldest order.
	Pop(ctx context.Context) (*order.Order, error)
	Len(ctx context.Context) (int64, error)
}
