package services_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmSession(t *testing.T, policy delivery.Policy, method checkout.DeliveryMethod) *checkout.Session {
	t.Helper()
	st, err := store.NewStore(kernel.NewUUID(), "Corner Bistro", "5550102030",
		coordinates(t, -23.55, -46.63), policy, nil, false)
	require.NoError(t, err)
	burger, err := cart.NewItem("burger", "Burger", 3, kernel.MustMoney("10"), "", nil)
	require.NoError(t, err)
	pizza, err := cart.NewItem("pizza", "Pizza", 1, kernel.MustMoney("25"), "", nil)
	require.NoError(t, err)
	c, err := cart.NewCart(burger, pizza)
	require.NoError(t, err)

	flow := checkout.DefaultFlow(checkout.DefaultRules())
	s, err := flow.Start(kernel.NewUUID(), st, c, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.SetCustomer(checkout.Customer{Name: "Ana", WhatsAppNumber: "5550102030"}))
	require.NoError(t, flow.Next(s))
	require.NoError(t, s.SetDeliveryMethod(method))
	require.NoError(t, flow.Next(s))
	if method.IsDelivery() {
		require.NoError(t, s.SetAddress(checkout.Address{
			Street: "Main St", Number: "42", Neighborhood: "Centro", DwellingType: checkout.DwellingHouse,
		}))
		ticket, err := s.BeginQuote()
		require.NoError(t, err)
		q, err := services.NewDeliveryPricer(nil, nil).Quote(t.Context(), services.QuoteRequest{
			Policy: policy, Subtotal: s.Subtotal(),
		})
		require.NoError(t, err)
		require.True(t, s.ApplyQuote(ticket, q))
		require.NoError(t, flow.Next(s))
	}
	cash, err := payment.NewCashSelection(kernel.MustMoney("100"))
	require.NoError(t, err)
	require.NoError(t, s.SetPayment(cash))
	require.NoError(t, flow.Next(s))
	require.Equal(t, checkout.StepConfirm, s.CurrentStep())
	return s
}

func TestOrderDraftBuilder_Build(t *testing.T) {
	builder := services.NewOrderDraftBuilder()
	createdAt := time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC)

	t.Run("flat delivery round trip", func(t *testing.T) {
		policy, err := delivery.NewFlatBasePolicy(kernel.MustMoney("15"), kernel.MustMoney("100"))
		require.NoError(t, err)
		s := confirmSession(t, policy, checkout.DeliveryMethodDelivery)

		o, err := builder.Build(kernel.NewUUID(), s, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "55.00", o.Subtotal().String())
		assert.Equal(t, "70.00", o.Total().String())
		change, ok := o.Change()
		require.True(t, ok)
		assert.Equal(t, "30.00", change.String())
		assert.Equal(t, s.Store().ID(), o.StoreID())
		assert.Equal(t, createdAt, o.CreatedAt())
	})

	t.Run("manual delivery keeps the merchant message", func(t *testing.T) {
		policy, err := delivery.NewManualPolicy("Fee agreed on WhatsApp")
		require.NoError(t, err)
		s := confirmSession(t, policy, checkout.DeliveryMethodDelivery)

		o, err := builder.Build(kernel.NewUUID(), s, createdAt)

		require.NoError(t, err)
		_, known := o.DeliveryFee()
		assert.False(t, known)
		assert.Equal(t, "55.00", o.Total().String())
		assert.Contains(t, o.Summary(), "Delivery: to be confirmed (Fee agreed on WhatsApp)")
	})

	t.Run("pickup", func(t *testing.T) {
		policy, err := delivery.NewManualPolicy("")
		require.NoError(t, err)
		s := confirmSession(t, policy, checkout.DeliveryMethodPickup)

		o, err := builder.Build(kernel.NewUUID(), s, createdAt)

		require.NoError(t, err)
		assert.Contains(t, o.Summary(), "Pickup at store")
		assert.NotContains(t, o.Summary(), "Delivery:")
	})

	t.Run("session not on confirm", func(t *testing.T) {
		policy, err := delivery.NewManualPolicy("")
		require.NoError(t, err)
		st, err := store.NewStore(kernel.NewUUID(), "Cafe", "5550102030", coordinates(t, 0, 0), policy, nil, false)
		require.NoError(t, err)
		item, err := cart.NewItem("tea", "Tea", 1, kernel.MustMoney("3"), "", nil)
		require.NoError(t, err)
		c, err := cart.NewCart(item)
		require.NoError(t, err)
		s, err := checkout.DefaultFlow(checkout.DefaultRules()).Start(kernel.NewUUID(), st, c, createdAt)
		require.NoError(t, err)

		_, err = builder.Build(kernel.NewUUID(), s, createdAt)

		require.ErrorIs(t, err, services.ErrSessionNotReady)
	})

}
