package geo

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// HaversineCalculator measures the straight-line distance between two
// points. It never suggests a price; the store's policy prices the distance.
type HaversineCalculator struct{}

var _ ports.DistanceCalculator = HaversineCalculator{}

func NewHaversineCalculator() HaversineCalculator {
	return HaversineCalculator{}
}

func (HaversineCalculator) CalculateDeliveryPrice(
	ctx context.Context,
	origin kernel.Coordinates,
	destination kernel.Coordinates,
	_ kernel.UUID,
) (ports.DistanceEstimate, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceEstimate{}, err
	}
	km, err := origin.DistanceKm(destination)
	if err != nil {
		return ports.DistanceEstimate{}, err
	}
	return ports.DistanceEstimate{
		DistanceKm:  km,
		Method:      "haversine",
		WithinRange: true,
	}, nil
}
