package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	line, err := order.NewLineItem("rebar 12mm", 200, "pc", 450)
	suite.Require().NoError(err)

	destination, err := order.NewDestination("14 Quarry Rd", 52.37, 4.89)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewNumber(time.Now()),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.LineItem{line},
		90000,
		order.ModeDelivery,
		&destination,
		time.Now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsNegotiationState() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	window, err := kernel.NewWindow(
		time.Now().Add(24*time.Hour).Truncate(time.Microsecond),
		time.Now().Add(28*time.Hour).Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ProposeWindow(kernel.RoleBuyer, window, time.Now()))

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.Equal(testOrder.Number(), loaded.Number())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(order.ProposalPending, loaded.ProposalStatus())
	suite.Equal(kernel.RoleBuyer, loaded.ProposedBy())
	suite.Require().NotNil(loaded.ProposedWindow())
	suite.True(loaded.ProposedWindow().IsEqual(window))
	suite.Nil(loaded.PromisedWindow())
	suite.Equal(order.ModeDelivery, loaded.Mode())
	suite.Require().NotNil(loaded.Destination())
	suite.Equal("14 Quarry Rd", loaded.Destination().Address())
	suite.Len(loaded.Lines(), 1)
	suite.Equal(int64(90000), loaded.TotalAmount())
	suite.Equal(1, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	window, err := kernel.NewWindow(time.Now().Add(24*time.Hour), time.Now().Add(28*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ProposeWindow(kernel.RoleSupplier, window, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(2, loaded.Version())
	suite.Equal(order.ProposalPending, loaded.ProposalStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionRejected() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two copies loaded at the same version; the second write must lose.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	window, err := kernel.NewWindow(time.Now().Add(24*time.Hour), time.Now().Add(28*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(first.ProposeWindow(kernel.RoleBuyer, window, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	otherWindow, err := kernel.NewWindow(time.Now().Add(48*time.Hour), time.Now().Add(52*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(second.ProposeWindow(kernel.RoleSupplier, otherWindow, time.Now()))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(kernel.RoleBuyer, loaded.ProposedBy())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsProposalColumnsOnAccept() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	window, err := kernel.NewWindow(time.Now().Add(24*time.Hour), time.Now().Add(28*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ProposeWindow(kernel.RoleBuyer, window, time.Now()))

	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AcceptWindow(kernel.RoleSupplier, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
	suite.Equal(order.ProposalAccepted, loaded.ProposalStatus())
	suite.Require().NotNil(loaded.PromisedWindow())
	suite.Nil(loaded.ProposedWindow())
	suite.Equal(kernel.RoleUnknown, loaded.ProposedBy())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
