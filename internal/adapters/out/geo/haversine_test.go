package geo_test

import (
	"context"
	"testing"

	"storefront/internal/adapters/out/geo"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineCalculator(t *testing.T) {
	calc := geo.NewHaversineCalculator()
	// São Paulo Sé to Paulista Avenue is roughly 2.5 km.
	estimate, err := calc.CalculateDeliveryPrice(t.Context(),
		coordinates(t, -23.5505, -46.6333), coordinates(t, -23.5614, -46.6559), kernel.NewUUID())

	require.NoError(t, err)
	assert.InDelta(t, 2.5, estimate.DistanceKm, 0.3)
	assert.True(t, estimate.WithinRange)
	assert.Zero(t, estimate.Price)
}

func TestHaversineCalculator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := geo.NewHaversineCalculator().CalculateDeliveryPrice(ctx,
		coordinates(t, 0, 0), coordinates(t, 1, 1), kernel.NewUUID())

	require.ErrorIs(t, err, context.Canceled)
}
