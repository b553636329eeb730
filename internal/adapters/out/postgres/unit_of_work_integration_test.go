package postgres_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/handoverrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that an order transition and its
// handover event commit or roll back together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &handoverrepo.HandoverDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, handover_events").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// inTransitOrder builds an order ready for a delivery handover.
func (suite *UnitOfWorkIntegrationTestSuite) inTransitOrder() *order.Order {
	line, err := order.NewLineItem("washed sand", 8, "t", 3200)
	suite.Require().NoError(err)

	destination, err := order.NewDestination("12 Quarry Rd", 55.71, 37.62)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewNumber(time.Now()),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.LineItem{line},
		25600,
		order.ModeDelivery,
		&destination,
		time.Now(),
	)
	suite.Require().NoError(err)

	window, err := kernel.NewWindow(time.Now().Add(24*time.Hour), time.Now().Add(28*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ProposeWindow(kernel.RoleBuyer, window, time.Now()))
	suite.Require().NoError(testOrder.AcceptWindow(kernel.RoleSupplier, time.Now()))
	suite.Require().NoError(testOrder.BeginTransit(kernel.RoleSupplier, time.Now()))
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) deliveryEvent(orderID kernel.UUID) *handover.Handover {
	record, err := handover.NewQuantityRecord(handover.KindDelivery, 8, "t", "")
	suite.Require().NoError(err)

	event, err := handover.NewHandover(
		kernel.NewUUID(),
		orderID,
		handover.KindDelivery,
		[]string{"photos/truck.jpg"},
		record,
		"",
		time.Now(),
	)
	suite.Require().NoError(err)
	return event
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndHandoverTogether() {
	ctx := context.Background()
	testOrder := suite.inTransitOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.MarkDelivered(kernel.RoleSupplier, true, time.Now()))

	event := suite.deliveryEvent(loaded.ID())
	suite.Require().NoError(uow.HandoverRepository().Add(ctx, event))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, reloaded.Status())

	var count int64
	suite.Require().NoError(suite.db.Model(&handoverrepo.HandoverDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsBothWrites() {
	ctx := context.Background()
	testOrder := suite.inTransitOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.MarkDelivered(kernel.RoleSupplier, true, time.Now()))
	suite.Require().NoError(uow.HandoverRepository().Add(ctx, suite.deliveryEvent(loaded.ID())))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Rollback(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InTransit, reloaded.Status())
	suite.Equal(1, reloaded.Version())

	var count int64
	suite.Require().NoError(suite.db.Model(&handoverrepo.HandoverDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUpdate_SecondTransactionLoses() {
	ctx := context.Background()
	testOrder := suite.inTransitOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	firstCopy, err := first.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(firstCopy.MarkDelivered(kernel.RoleSupplier, true, time.Now()))
	suite.Require().NoError(first.OrderRepository().Update(ctx, firstCopy))
	suite.Require().NoError(first.Commit(ctx))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	secondCopy := testOrder // still at the version it was created with
	suite.Require().NoError(secondCopy.MarkDelivered(kernel.RoleSupplier, true, time.Now()))
	err = second.OrderRepository().Update(ctx, secondCopy)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Require().NoError(second.Rollback(ctx))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
