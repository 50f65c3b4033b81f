package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DeliveryOrder_RoundTrips() {
	ctx := context.Background()
	o := suite.deliveryOrder()
	suite.Require().NoError(o.MarkSubmitted())

	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(o))
	suite.Equal(order.Submitted, stored.Status())
	suite.Equal(o.Number(), stored.Number())
	suite.Equal(o.Summary(), stored.Summary())
	suite.Equal("85.00", stored.Total().String())

	items := stored.Items()
	suite.Require().Len(items, 2)
	suite.Equal("pizza", items[0].CatalogItemID())
	suite.Equal("Large", items[0].VariantLabel())
	suite.Equal([]string{"Extra cheese", "Olives"}, items[0].OptionLabels())

	f := stored.Fulfilment()
	suite.Require().NotNil(f.Address)
	suite.Require().NotNil(f.Address.Coordinates)
	suite.InDelta(-23.6, f.Address.Coordinates.Latitude(), 1e-9)
	suite.Equal("Apt 7B", f.Address.Unit)
	suite.Require().NotNil(f.Fee)
	suite.Equal("15.00", f.Fee.String())

	tendered, ok := stored.Payment().Tendered()
	suite.Require().True(ok)
	suite.Equal("100.00", tendered.String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PickupWithTransfer() {
	ctx := context.Background()
	o := suite.pickupOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(stored.Fulfilment().Address)
	_, hasFee := stored.DeliveryFee()
	suite.False(hasFee)
	suite.Equal(payment.MethodTransfer, stored.Payment().Method())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	ctx := context.Background()
	o := suite.pickupOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.repository.Add(ctx, o)

	suite.Require().ErrorIs(err, ports.ErrOrderAlreadyExists)
	var count int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Status() {
	ctx := context.Background()
	o := suite.pickupOrder()
	suite.Require().NoError(o.MarkUnsaved())
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.MarkSubmitted())

	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Submitted, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	err := suite.repository.Update(context.Background(), suite.pickupOrder())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) deliveryOrder() *order.Order {
	pizza, err := cart.NewItem("pizza", "Pizza", 1, kernel.MustMoney("40"), "Large", []string{"Extra cheese", "Olives"})
	suite.Require().NoError(err)
	soda, err := cart.NewItem("soda", "Soda", 3, kernel.MustMoney("10"), "", nil)
	suite.Require().NoError(err)
	dest, err := kernel.NewCoordinates(-23.6, -46.7)
	suite.Require().NoError(err)
	fee := kernel.MustMoney("15")
	cash, err := payment.NewCashSelection(kernel.MustMoney("100"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(order.Draft{
		ID:       kernel.NewUUID(),
		StoreID:  kernel.NewUUID(),
		Customer: checkout.Customer{Name: "Ana Souza", WhatsAppNumber: "(555) 010-2030"},
		Items:    []cart.Item{pizza, soda},
		Fulfilment: order.Fulfilment{
			Method: checkout.DeliveryMethodDelivery,
			Address: &checkout.Address{
				Street:       "Main St",
				Number:       "42",
				Neighborhood: "Centro",
				DwellingType: checkout.DwellingApartment,
				Unit:         "Apt 7B",
				Reference:    "Blue door",
				Coordinates:  &dest,
			},
			Fee: &fee,
		},
		Payment:      cash,
		Observations: "Ring twice",
		CreatedAt:    time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) pickupOrder() *order.Order {
	burger, err := cart.NewItem("burger", "Burger", 2, kernel.MustMoney("10"), "", nil)
	suite.Require().NoError(err)
	o, err := order.NewOrder(order.Draft{
		ID:         kernel.NewUUID(),
		StoreID:    kernel.NewUUID(),
		Customer:   checkout.Customer{Name: "Ana Souza", WhatsAppNumber: "5550102030"},
		Items:      []cart.Item{burger},
		Fulfilment: order.Fulfilment{Method: checkout.DeliveryMethodPickup},
		Payment:    payment.NewTransferSelection(),
		CreatedAt:  time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
