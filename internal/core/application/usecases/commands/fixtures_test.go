package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	mondayAfternoon = time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC)
	mondayEvening   = time.Date(2024, time.March, 4, 17, 0, 0, 0, time.UTC)
	discardLogger   = slog.New(slog.DiscardHandler)
	evaluator       = schedule.NewEvaluator(discardLogger)
	splitShift      = schedule.WeeklySpec{
		time.Monday: {IsOpen: true, Periods: []schedule.Period{
			{Open: "13:00", Close: "16:00"},
			{Open: "19:00", Close: "23:00"},
		}},
	}
	flow = checkout.DefaultFlow(checkout.DefaultRules())
)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// memorySessions is a SessionRepository that stores snapshots, so every Get
// returns a fresh copy like a real store would.
type memorySessions struct {
	mu    sync.Mutex
	snaps map[string]checkout.Snapshot
	saves int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{snaps: make(map[string]checkout.Snapshot)}
}

func (m *memorySessions) Get(_ context.Context, id kernel.UUID) (*checkout.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id)
	}
	return checkout.RestoreSession(snap), nil
}

func (m *memorySessions) Save(_ context.Context, s *checkout.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[s.ID().String()] = s.Snapshot()
	m.saves++
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id kernel.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, id.String())
	return nil
}

func (m *memorySessions) load(t *testing.T, id kernel.UUID) *checkout.Session {
	t.Helper()
	s, err := m.Get(t.Context(), id)
	require.NoError(t, err)
	return s
}

// strictSessions fails like a networked store once the caller's context is done.
type strictSessions struct{ *memorySessions }

func (s strictSessions) Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.memorySessions.Get(ctx, id)
}

func (s strictSessions) Save(ctx context.Context, session *checkout.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.memorySessions.Save(ctx, session)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*store.Store); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUnsavedOrderQueue struct{ mock.Mock }

func (m *MockUnsavedOrderQueue) Push(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockUnsavedOrderQueue) Pop(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockUnsavedOrderQueue) Len(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMessenger struct{ mock.Mock }

func (m *MockMessenger) HandOff(phone, text string) (string, error) {
	args := m.Called(phone, text)
	return args.String(0), args.Error(1)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishOrderSubmitted(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockDistanceCalculator struct{ mock.Mock }

func (m *MockDistanceCalculator) CalculateDeliveryPrice(
	ctx context.Context,
	origin kernel.Coordinates,
	destination kernel.Coordinates,
	storeID kernel.UUID,
) (ports.DistanceEstimate, error) {
	args := m.Called(ctx, origin, destination, storeID)
	return args.Get(0).(ports.DistanceEstimate), args.Error(1)
}

// successfulUoW wires a factory whose single unit of work stores orders with repo.
func successfulUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	return factory, uow
}

func mustCoordinates(t *testing.T, lat, lng float64) kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	return c
}

func newStore(t *testing.T, policy delivery.Policy) *store.Store {
	t.Helper()
	s, err := store.NewStore(kernel.NewUUID(), "Corner Bistro", "+1 (555) 010-2030",
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

// roundTripLines is 3 × $10.00 + 1 × $25.00.
func roundTripLines() []commands.CartLine {
	return []commands.CartLine{
		{CatalogItemID: "burger", Name: "Burger", Quantity: 3, UnitPrice: kernel.MustMoney("10")},
		{CatalogItemID: "pizza", Name: "Pizza", Quantity: 1, UnitPrice: kernel.MustMoney("25")},
	}
}

// startSession opens a session for st and stores it in sessions.
func startSession(t *testing.T, sessions *memorySessions, st *store.Store) kernel.UUID {
	t.Helper()
	stores := new(MockStoreRepository)
	stores.On("Get", mock.Anything, st.ID()).Return(st, nil)

	cmd, err := commands.NewStartCheckoutCommand(st.ID(), roundTripLines())
	require.NoError(t, err)
	h := commands.NewStartCheckoutCommandHandler(stores, sessions, flow, clock(mondayAfternoon))
	id, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return id
}

func sessionCommand(t *testing.T, id kernel.UUID) commands.SessionCommand {
	t.Helper()
	cmd, err := commands.NewSessionCommand(id)
	require.NoError(t, err)
	return cmd
}

func navigate(t *testing.T, sessions *memorySessions, id kernel.UUID, direction commands.Direction) (checkout.Step, error) {
	t.Helper()
	cmd, err := commands.NewNavigateCheckoutCommand(id, direction)
	require.NoError(t, err)
	h := commands.NewNavigateCheckoutCommandHandler(sessions, flow, commands.NewQuoteTracker())
	return h.Handle(t.Context(), cmd)
}

func update(t *testing.T, sessions *memorySessions, pricerDeps *MockDistanceCalculator, id kernel.UUID, details commands.CheckoutDetails) error {
	t.Helper()
	cmd, err := commands.NewUpdateCheckoutDetailsCommand(id, details)
	require.NoError(t, err)
	h := commands.NewUpdateCheckoutDetailsCommandHandler(sessions, flow, newPricer(pricerDeps), commands.NewQuoteTracker())
	return h.Handle(t.Context(), cmd)
}

func ptr[T any](v T) *T {
	return &v
}

func validCustomer() *checkout.Customer {
	return &checkout.Customer{Name: "Ana Souza", WhatsAppNumber: "(555) 010-2030"}
}

func homeAddress(coords *kernel.Coordinates) *checkout.Address {
	return &checkout.Address{
		Street:       "Main St",
		Number:       "42",
		Neighborhood: "Centro",
		DwellingType: checkout.DwellingHouse,
		Coordinates:  coords,
	}
}

func cashPayment(t *testing.T, tendered string) *payment.Selection {
	t.Helper()
	sel, err := payment.NewCashSelection(kernel.MustMoney(tendered))
	require.NoError(t, err)
	return &sel
}

// advanceFlatToConfirm walks a flat-priced delivery session to Confirm,
// paying $100 in cash.
func advanceFlatToConfirm(t *testing.T, sessions *memorySessions, id kernel.UUID) {
	t.Helper()
	require.NoError(t, update(t, sessions, nil, id, commands.CheckoutDetails{Customer: validCustomer()}))
	_, err := navigate(t, sessions, id, commands.DirectionForward)
	require.NoError(t, err)
	require.NoError(t, update(t, sessions, nil, id, commands.CheckoutDetails{
		DeliveryMethod: ptr(checkout.DeliveryMethodDelivery),
	}))
	_, err = navigate(t, sessions, id, commands.DirectionForward)
	require.NoError(t, err)
	require.NoError(t, update(t, sessions, nil, id, commands.CheckoutDetails{Address: homeAddress(nil)}))
	_, err = navigate(t, sessions, id, commands.DirectionForward)
	require.NoError(t, err)
	require.NoError(t, update(t, sessions, nil, id, commands.CheckoutDetails{Payment: cashPayment(t, "100")}))
	step, err := navigate(t, sessions, id, commands.DirectionForward)
	require.NoError(t, err)
	require.Equal(t, checkout.StepConfirm, step)
}

// advancePickupToConfirm walks a pickup session to Confirm, paying by transfer.
func advancePickupToConfirm(t *testing.T, sessions *memorySessions, id kernel.UUID) {
	t.Helper()
	require.NoError(t, update(t, sessions, nil, id, commands.CheckoutDetails{Customer: validCustomer()}))
	_, err := navigate(t, sessions, id, commands.DirectionForward)
	require.NoError(t, err)
	require.NoError(t, update(t, sessions, nil, id, commands.CheckoutDetails{
		DeliveryMethod: ptr(checkout.DeliveryMethodPickup),
	}))
	_, err = navigate(t, sessions, id, commands.DirectionForward)
	require.NoError(t, err)
	transfer := payment.NewTransferSelection()
	require.NoError(t, update(t, sessions, nil, id, commands.CheckoutDetails{Payment: &transfer}))
	step, err := navigate(t, sessions, id, commands.DirectionForward)
	require.NoError(t, err)
	require.Equal(t, checkout.StepConfirm, step)
}

func newPricer(distance *MockDistanceCalculator) services.DeliveryPricer {
	if distance == nil {
		return services.NewDeliveryPricer(nil, nil)
	}
	return services.NewDeliveryPricer(distance, nil)
}
