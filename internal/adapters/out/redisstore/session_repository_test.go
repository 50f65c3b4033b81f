package redisstore_test

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/redisstore"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_RoundTrip(t *testing.T) {
	client, _ := setupRedis(t)
	repo := redisstore.NewSessionRepository(client, time.Minute)
	s := newSession(t)

	dest, err := kernel.NewCoordinates(-23.6, -46.7)
	require.NoError(t, err)
	require.NoError(t, s.SetCustomer(checkout.Customer{Name: "Ana Souza", WhatsAppNumber: "(555) 010-2030"}))
	require.NoError(t, s.SetDeliveryMethod(checkout.DeliveryMethodDelivery))
	require.NoError(t, s.SetAddress(checkout.Address{
		Street:       "Main St",
		Number:       "42",
		Neighborhood: "Centro",
		DwellingType: checkout.DwellingApartment,
		Unit:         "7B",
		Coordinates:  &dest,
	}))
	ticket, err := s.BeginQuote()
	require.NoError(t, err)
	quote := delivery.NewPricedQuote(delivery.ModeDistance, kernel.MustMoney("48"), "").
		WithDistanceKm(6).
		WithDestination(dest)
	require.True(t, s.ApplyQuote(ticket, quote))
	cash, err := payment.NewCashSelection(kernel.MustMoney("120"))
	require.NoError(t, err)
	require.NoError(t, s.SetPayment(cash))
	require.NoError(t, s.SetObservations("Ring twice"))

	require.NoError(t, repo.Save(t.Context(), s))
	stored, err := repo.Get(t.Context(), s.ID())

	require.NoError(t, err)
	assert.Equal(t, s.ID(), stored.ID())
	assert.Equal(t, s.Store().ID(), stored.Store().ID())
	assert.Equal(t, delivery.ModeDistance, stored.Store().Policy().Mode())
	assert.True(t, stored.Store().BusinessHoursEnabled())
	assert.Equal(t, s.CurrentStep(), stored.CurrentStep())
	assert.True(t, s.StartedAt().Equal(stored.StartedAt()))
	assert.Equal(t, "Ana Souza", stored.Customer().Name)
	assert.Equal(t, "Ring twice", stored.Observations())
	assert.Equal(t, "55.00", stored.Subtotal().String())

	address, ok := stored.Address()
	require.True(t, ok)
	assert.Equal(t, "7B", address.Unit)
	require.NotNil(t, address.Coordinates)

	current, ok := stored.CurrentQuote()
	require.True(t, ok)
	fee, ok := current.Fee()
	require.True(t, ok)
	assert.Equal(t, "48.00", fee.String())
	assert.Equal(t, "103.00", stored.AmountDue().String())

	settlement, ok := stored.Settlement()
	require.True(t, ok)
	assert.True(t, settlement.IsValid)
	assert.Equal(t, "17.00", settlement.Change.String())
}

func TestSessionRepository_PendingQuoteSurvivesReload(t *testing.T) {
	client, _ := setupRedis(t)
	repo := redisstore.NewSessionRepository(client, time.Minute)
	s := newSession(t)
	dest, err := kernel.NewCoordinates(-23.6, -46.7)
	require.NoError(t, err)
	require.NoError(t, s.SetDeliveryMethod(checkout.DeliveryMethodDelivery))
	require.NoError(t, s.SetAddress(checkout.Address{Street: "Main St", Number: "42", Neighborhood: "Centro", Coordinates: &dest}))
	ticket, err := s.BeginQuote()
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), s))

	stored, err := repo.Get(t.Context(), s.ID())
	require.NoError(t, err)

	assert.True(t, stored.IsQuotePending())
	assert.True(t, stored.ApplyQuote(ticket, delivery.NewPricedQuote(delivery.ModeDistance, kernel.MustMoney("20"), "")))
}

func TestSessionRepository_Expiry(t *testing.T) {
	client, mr := setupRedis(t)
	repo := redisstore.NewSessionRepository(client, time.Minute)
	s := newSession(t)
	require.NoError(t, repo.Save(t.Context(), s))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(t.Context(), s.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSessionRepository_SaveRefreshesExpiry(t *testing.T) {
	client, mr := setupRedis(t)
	repo := redisstore.NewSessionRepository(client, time.Minute)
	s := newSession(t)
	require.NoError(t, repo.Save(t.Context(), s))

	mr.FastForward(45 * time.Second)
	require.NoError(t, repo.Save(t.Context(), s))
	mr.FastForward(45 * time.Second)

	_, err := repo.Get(t.Context(), s.ID())
	require.NoError(t, err)
}

func TestSessionRepository_Delete(t *testing.T) {
	client, _ := setupRedis(t)
	repo := redisstore.NewSessionRepository(client, 0)
	s := newSession(t)
	require.NoError(t, repo.Save(t.Context(), s))

	require.NoError(t, repo.Delete(t.Context(), s.ID()))

	_, err := repo.Get(t.Context(), s.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSessionRepository_CorruptDocument(t *testing.T) {
	client, mr := setupRedis(t)
	repo := redisstore.NewSessionRepository(client, time.Minute)
	id := kernel.NewUUID()
	require.NoError(t, mr.Set("checkout:session:"+id.String(), "{not json"))

	_, err := repo.Get(t.Context(), id)

	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSessionRepository_SubmittingMarkSurvivesReload(t *testing.T) {
	client, _ := setupRedis(t)
	repo := redisstore.NewSessionRepository(client, time.Minute)
	snap := newSession(t).Snapshot()
	snap.Submitting = true
	snap.SubmittingAt = time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(t.Context(), checkout.RestoreSession(snap)))

	stored, err := repo.Get(t.Context(), snap.ID)

	require.NoError(t, err)
	storedSnap := stored.Snapshot()
	assert.True(t, storedSnap.Submitting)
	assert.True(t, snap.SubmittingAt.Equal(storedSnap.SubmittingAt))
}
