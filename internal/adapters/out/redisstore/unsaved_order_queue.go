package redisstore

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const unsavedOrdersKey = "checkout:orders:unsaved"

// UnsavedOrderQueue is a FIFO redis list of orders the database refused at
// submission time.
type UnsavedOrderQueue struct {
	client *redis.Client
}

func NewUnsavedOrderQueue(client *redis.Client) *UnsavedOrderQueue {
	return &UnsavedOrderQueue{client: client}
}

func (q *UnsavedOrderQueue) Push(ctx context.Context, o *order.Order) error {
	data, err := marshalOrder(o)
	if err != nil {
		return fmt.Errorf("marshal order failed: %w", err)
	}
	if err = q.client.RPush(ctx, unsavedOrdersKey, data).Err(); err != nil {
		return fmt.Errorf("redis rpush failed: %w", err)
	}
	return nil
}

// Pop returns ports.ErrQueueIsEmpty when no order is waiting. An entry that
// cannot be decoded is already removed from the list when the error returns.
func (q *UnsavedOrderQueue) Pop(ctx context.Context) (*order.Order, error) {
	data, err := q.client.LPop(ctx, unsavedOrdersKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrQueueIsEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis lpop failed: %w", err)
	}

	o, err := unmarshalOrder(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err)
	}
	return o, nil
}

func (q *UnsavedOrderQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, unsavedOrdersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen failed: %w", err)
	}
	return n, nil
}
