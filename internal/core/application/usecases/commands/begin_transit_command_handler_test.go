package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBeginTransitCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	confirmed := confirmedOrder(buyerID, supplierID)

	cmd, err := commands.NewBeginTransitCommand(confirmed.ID(), supplierActor(supplierID))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, confirmed.ID()).Return(confirmed, nil).Once(),
		repo.On("Update", mock.Anything, confirmed).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, ports.EventTransitStarted, confirmed.ID(), buyerID, mock.Anything).
		Return(nil).Once()

	h := commands.NewBeginTransitCommandHandler(factory, testPublisher(notifier))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.InTransit, confirmed.Status())
	notifier.AssertExpectations(t)
}

func TestBeginTransitCommandHandler_Handle_BuyerNotAllowed(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	confirmed := confirmedOrder(buyerID, kernel.NewUUID())

	cmd, err := commands.NewBeginTransitCommand(confirmed.ID(), buyerActor(buyerID))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, confirmed.ID()).Return(confirmed, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBeginTransitCommandHandler(factory, silentPublisher())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, order.Confirmed, confirmed.Status())
}

func TestBeginTransitCommandHandler_Handle_NotConfirmed(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	pending := pickupOrder(kernel.NewUUID(), supplierID)

	cmd, err := commands.NewBeginTransitCommand(pending.ID(), supplierActor(supplierID))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBeginTransitCommandHandler(factory, silentPublisher())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
}
