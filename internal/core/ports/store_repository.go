package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/store"
)

// StoreRepository is the store configuration source. It is read once when a
// checkout starts; sessions keep their own snapshot afterwards.
type StoreRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)
}
