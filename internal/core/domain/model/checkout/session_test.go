package checkout_test

import (
	"testing"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("rejects an empty cart", func(t *testing.T) {
		_, err := checkout.NewSession(kernel.NewUUID(), flatStore(t), cart.Cart{}, checkout.StepCustomerInfo, mondayAfternoon)

		require.ErrorIs(t, err, checkout.ErrCartIsEmpty)
	})

	t.Run("rejects a missing store", func(t *testing.T) {
		_, err := checkout.NewSession(kernel.NewUUID(), nil, roundTripCart(t), checkout.StepCustomerInfo, mondayAfternoon)

		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var s checkout.Session

		require.ErrorIs(t, s.Validate(), checkout.ErrSessionIsNotConstructed)
	})
}

func TestSession_QuoteLastRequestWins(t *testing.T) {
	flow := checkout.DefaultFlow(checkout.DefaultRules())
	s := start(t, flow, distanceStore(t))
	advanceToAddress(t, flow, s)

	first := mustCoordinates(t, -23.56, -46.63)
	require.NoError(t, s.SetAddress(homeAddress(&first)))
	firstTicket, err := s.BeginQuote()
	require.NoError(t, err)

	// The shopper moves the pin before the first quote returns
	second := mustCoordinates(t, -23.57, -46.64)
	require.NoError(t, s.SetAddress(homeAddress(&second)))
	assert.False(t, s.IsQuotePending())
	secondTicket, err := s.BeginQuote()
	require.NoError(t, err)

	lateFirst := delivery.NewPricedQuote(delivery.ModeDistance, kernel.MustMoney("20"), "").WithDestination(first)
	assert.False(t, s.ApplyQuote(firstTicket, lateFirst))
	assert.True(t, s.IsQuotePending())

	secondQuote := delivery.NewPricedQuote(delivery.ModeDistance, kernel.MustMoney("24"), "").WithDestination(second)
	assert.True(t, s.ApplyQuote(secondTicket, secondQuote))
	assert.False(t, s.ApplyQuote(secondTicket, secondQuote))

	current, ok := s.CurrentQuote()
	require.True(t, ok)
	fee, _ := current.Fee()
	assert.Equal(t, "24.00", fee.String())
}

func TestSession_NewRequestSupersedesPending(t *testing.T) {
	flow := checkout.DefaultFlow(checkout.DefaultRules())
	s := start(t, flow, distanceStore(t))
	advanceToAddress(t, flow, s)
	dest := mustCoordinates(t, -23.56, -46.63)
	require.NoError(t, s.SetAddress(homeAddress(&dest)))

	first, err := s.BeginQuote()
	require.NoError(t, err)
	second, err := s.BeginQuote()
	require.NoError(t, err)

	assert.Greater(t, second.Seq, first.Seq)
	assert.False(t, s.FailQuote(first))
	assert.True(t, s.IsQuotePending())
	assert.True(t, s.FailQuote(second))
	assert.False(t, s.IsQuotePending())
	_, ok := s.Quote()
	assert.False(t, ok)
}

func TestSession_LeavingAddressCancelsQuote(t *testing.T) {
	flow := checkout.DefaultFlow(checkout.DefaultRules())
	s := start(t, flow, distanceStore(t))
	advanceToAddress(t, flow, s)
	dest := mustCoordinates(t, -23.56, -46.63)
	require.NoError(t, s.SetAddress(homeAddress(&dest)))
	ticket, err := s.BeginQuote()
	require.NoError(t, err)

	require.NoError(t, flow.Back(s))

	assert.Equal(t, checkout.StepDeliveryMethod, s.CurrentStep())
	assert.False(t, s.IsQuotePending())
	quote := delivery.NewPricedQuote(delivery.ModeDistance, kernel.MustMoney("20"), "").WithDestination(dest)
	assert.False(t, s.ApplyQuote(ticket, quote))
}

func TestSession_AbandonIgnoresLateResults(t *testing.T) {
	flow := checkout.DefaultFlow(checkout.DefaultRules())
	s := start(t, flow, distanceStore(t))
	advanceToAddress(t, flow, s)
	dest := mustCoordinates(t, -23.56, -46.63)
	require.NoError(t, s.SetAddress(homeAddress(&dest)))
	ticket, err := s.BeginQuote()
	require.NoError(t, err)

	s.Abandon()

	assert.True(t, s.IsAbandoned())
	assert.False(t, s.ApplyQuote(ticket, delivery.NewPricedQuote(delivery.ModeDistance, kernel.MustMoney("20"), "")))
	_, ok := s.Quote()
	assert.False(t, ok)
	require.ErrorIs(t, flow.Next(s), checkout.ErrSessionIsClosed)
	_, err = s.BeginQuote()
	require.ErrorIs(t, err, checkout.ErrSessionIsClosed)
}

func TestSession_PickupHasNoQuote(t *testing.T) {
	flow := checkout.DefaultFlow(checkout.DefaultRules())
	s := start(t, flow, flatStore(t))
	require.NoError(t, s.SetDeliveryMethod(checkout.DeliveryMethodPickup))

	_, err := s.BeginQuote()

	require.ErrorIs(t, err, checkout.ErrQuoteNotApplicable)
}

func TestSession_SnapshotRoundTrip(t *testing.T) {
	flow := checkout.DefaultFlow(checkout.DefaultRules())
	s := start(t, flow, distanceStore(t))
	advanceToAddress(t, flow, s)
	dest := mustCoordinates(t, -23.56, -46.63)
	require.NoError(t, s.SetAddress(homeAddress(&dest)))
	ticket, err := s.BeginQuote()
	require.NoError(t, err)

	restored := checkout.RestoreSession(s.Snapshot())

	require.NoError(t, restored.Validate())
	assert.Equal(t, s.CurrentStep(), restored.CurrentStep())
	assert.Equal(t, s.Path(), restored.Path())
	assert.True(t, restored.IsQuotePending())
	assert.True(t, restored.ApplyQuote(ticket,
		delivery.NewPricedQuote(delivery.ModeDistance, kernel.MustMoney("20"), "").WithDestination(dest)))
}
