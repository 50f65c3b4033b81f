package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	mondayAfternoon = time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC)
	mondayEvening   = time.Date(2024, time.March, 4, 17, 0, 0, 0, time.UTC)
	evaluator       = schedule.NewEvaluator(slog.New(slog.DiscardHandler))
	flow            = checkout.DefaultFlow(checkout.DefaultRules())
	lunchAndDinner  = schedule.WeeklySpec{
		time.Monday: {IsOpen: true, Periods: []schedule.Period{
			{Open: "13:00", Close: "16:00"},
			{Open: "19:00", Close: "23:00"},
		}},
	}
)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type memorySessions map[string]checkout.Snapshot

func (m memorySessions) Get(_ context.Context, id kernel.UUID) (*checkout.Session, error) {
	snap, ok := m[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id)
	}
	return checkout.RestoreSession(snap), nil
}

func (m memorySessions) Save(_ context.Context, s *checkout.Session) error {
	m[s.ID().String()] = s.Snapshot()
	return nil
}

func (m memorySessions) Delete(_ context.Context, id kernel.UUID) error {
	delete(m, id.String())
	return nil
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*store.Store); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func flatStore(t *testing.T) *store.Store {
	t.Helper()
	origin, err := kernel.NewCoordinates(-23.55, -46.63)
	require.NoError(t, err)
	policy, err := delivery.NewFlatBasePolicy(kernel.MustMoney("15"), kernel.MustMoney("100"))
	require.NoError(t, err)
	s, err := store.NewStore(kernel.NewUUID(), "Corner Bistro", "+1 (555) 010-2030",
		origin, policy, lunchAndDinner, true)
	require.NoError(t, err)
	return s
}

// startSession stores a new session with 3 × $10.00 + 1 × $25.00 in its cart.
func startSession(t *testing.T, sessions memorySessions, st *store.Store) *checkout.Session {
	t.Helper()
	burger, err := cart.NewItem("burger", "Burger", 3, kernel.MustMoney("10"), "", nil)
	require.NoError(t, err)
	pizza, err := cart.NewItem("pizza", "Pizza", 1, kernel.MustMoney("25"), "Large", []string{"Olives"})
	require.NoError(t, err)
	c, err := cart.NewCart(burger, pizza)
	require.NoError(t, err)

	s, err := flow.Start(kernel.NewUUID(), st, c, mondayAfternoon)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(t.Context(), s))
	return s
}
