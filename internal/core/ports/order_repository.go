// Package ports defines the contracts between the checkout core and the
// infrastructure it depends on: persistence, session storage, geo services,
// messaging and event publishing. Adapters under internal/adapters implement them.
package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// ErrOrderAlreadyExists is returned by OrderRepository.Add for a duplicate ID.
var ErrOrderAlreadyExists = errors.New("order already exists")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Adding an order whose ID is already stored fails with ErrOrderAlreadyExists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Only the status of a stored order can change.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its lines and current status.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
