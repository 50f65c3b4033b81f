package redisstore_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/model/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var startedAt = time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC)

// setupRedis starts an in-memory redis server and a client pointing at it.
func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func distanceStore(t *testing.T) *store.Store {
	t.Helper()
	origin, err := kernel.NewCoordinates(-23.55, -46.63)
	require.NoError(t, err)
	policy, err := delivery.NewDistancePolicy(kernel.MustMoney("8"), kernel.MustMoney("20"), 10)
	require.NoError(t, err)
	spec := schedule.WeeklySpec{
		time.Monday: {IsOpen: true, Periods: []schedule.Period{{Open: "13:00", Close: "16:00"}}},
	}
	s, err := store.NewStore(kernel.NewUUID(), "Corner Bistro", "+1 (555) 010-2030", origin, policy, spec, true)
	require.NoError(t, err)
	return s
}

func newSession(t *testing.T) *checkout.Session {
	t.Helper()
	burger, err := cart.NewItem("burger", "Burger", 3, kernel.MustMoney("10"), "", nil)
	require.NoError(t, err)
	pizza, err := cart.NewItem("pizza", "Pizza", 1, kernel.MustMoney("25"), "Large", []string{"Olives"})
	require.NoError(t, err)
	c, err := cart.NewCart(burger, pizza)
	require.NoError(t, err)

	s, err := checkout.DefaultFlow(checkout.DefaultRules()).Start(kernel.NewUUID(), distanceStore(t), c, startedAt)
	require.NoError(t, err)
	return s
}
