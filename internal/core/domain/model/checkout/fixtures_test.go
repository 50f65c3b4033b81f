package checkout_test

import (
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/model/store"

	"github.com/stretchr/testify/require"
)

var (
	mondayAfternoon = time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC)
	mondayEvening   = time.Date(2024, time.March, 4, 17, 0, 0, 0, time.UTC)
	evaluator       = schedule.NewEvaluator(slog.New(slog.DiscardHandler))
	splitShift      = schedule.WeeklySpec{
		time.Monday: {IsOpen: true, Periods: []schedule.Period{
			{Open: "13:00", Close: "16:00"},
			{Open: "19:00", Close: "23:00"},
		}},
	}
)

func mustCoordinates(t *testing.T, lat, lng float64) kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	return c
}

func newStore(t *testing.T, policy delivery.Policy) *store.Store {
	t.Helper()
	s, err := store.NewStore(kernel.NewUUID(), "Corner Bistro", "5550102030",
		mustCoordinates(t, -23.55, -46.63), policy, splitShift, true)
	require.NoError(t, err)
	return s
}

func flatStore(t *testing.T) *store.Store {
	t.Helper()
	policy, err := delivery.NewFlatBasePolicy(kernel.MustMoney("15"), kernel.MustMoney("100"))
	require.NoError(t, err)
	return newStore(t, policy)
}

func distanceStore(t *testing.T) *store.Store {
	t.Helper()
	policy, err := delivery.NewDistancePolicy(kernel.MustMoney("8"), kernel.MustMoney("20"), 10)
	require.NoError(t, err)
	return newStore(t, policy)
}

// roundTripCart is 3 × $10.00 + 1 × $25.00.
func roundTripCart(t *testing.T) cart.Cart {
	t.Helper()
	burger, err := cart.NewItem("burger", "Burger", 3, kernel.MustMoney("10"), "", nil)
	require.NoError(t, err)
	pizza, err := cart.NewItem("pizza", "Pizza", 1, kernel.MustMoney("25"), "", nil)
	require.NoError(t, err)
	c, err := cart.NewCart(burger, pizza)
	require.NoError(t, err)
	return c
}

func start(t *testing.T, flow checkout.Flow, st *store.Store) *checkout.Session {
	t.Helper()
	s, err := flow.Start(kernel.NewUUID(), st, roundTripCart(t), mondayAfternoon)
	require.NoError(t, err)
	return s
}

func validCustomer() checkout.Customer {
	return checkout.Customer{Name: "Ana Souza", WhatsAppNumber: "(555) 010-2030"}
}

func homeAddress(coords *kernel.Coordinates) checkout.Address {
	return checkout.Address{
		Street:       "Main St",
		Number:       "42",
		Neighborhood: "Centro",
		DwellingType: checkout.DwellingHouse,
		Coordinates:  coords,
	}
}

// advanceToAddress fills customer info, picks delivery and stops on Address.
func advanceToAddress(t *testing.T, flow checkout.Flow, s *checkout.Session) {
	t.Helper()
	require.NoError(t, s.SetCustomer(validCustomer()))
	require.NoError(t, flow.Next(s))
	require.NoError(t, s.SetDeliveryMethod(checkout.DeliveryMethodDelivery))
	require.NoError(t, flow.Next(s))
	require.Equal(t, checkout.StepAddress, s.CurrentStep())
}
