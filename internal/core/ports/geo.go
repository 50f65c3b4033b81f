package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// DistanceEstimate is the raw answer of a distance service. Price is the
// service's own suggestion; the store's delivery policy decides the fee.
type DistanceEstimate struct {
	Price       float64
	DistanceKm  float64
	Method      string
	WithinRange bool
	Message     string
}

// DistanceCalculator measures the delivery distance from a store to a
// destination. Implementations must honour ctx cancellation and report
// failures as errs.ServiceUnavailableError.
type DistanceCalculator interface {
	CalculateDeliveryPrice(
		ctx context.Context,
		origin kernel.Coordinates,
		destination kernel.Coordinates,
		storeID kernel.UUID,
	) (DistanceEstimate, error)
}

// ZoneResolver matches a destination against a store's delivery zones.
// found is false when no zone contains the destination.
type ZoneResolver interface {
	ResolveZone(ctx context.Context, storeID kernel.UUID, destination kernel.Coordinates) (zoneID string, found bool, err error)
}
