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

func TestAcceptWindowCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	pending := pickupOrder(buyerID, supplierID)
	window := futureWindow()
	require.NoError(t, pending.ProposeWindow(kernel.RoleBuyer, window, pending.CreatedAt()))

	cmd, err := commands.NewAcceptWindowCommand(pending.ID(), supplierActor(supplierID))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		repo.On("Update", mock.Anything, pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, ports.EventWindowAccepted, pending.ID(), buyerID, mock.Anything).
		Return(nil).Once()

	h := commands.NewAcceptWindowCommandHandler(factory, testPublisher(notifier))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Confirmed, pending.Status())
	assert.Equal(t, order.ProposalAccepted, pending.ProposalStatus())
	require.NotNil(t, pending.PromisedWindow())
	assert.True(t, pending.PromisedWindow().IsEqual(window))
	assert.Nil(t, pending.ProposedWindow())
	notifier.AssertExpectations(t)
}

func TestAcceptWindowCommandHandler_Handle_OwnProposal(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	pending := pickupOrder(buyerID, supplierID)
	require.NoError(t, pending.ProposeWindow(kernel.RoleBuyer, futureWindow(), pending.CreatedAt()))

	cmd, err := commands.NewAcceptWindowCommand(pending.ID(), buyerActor(buyerID))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptWindowCommandHandler(factory, silentPublisher())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.Pending, pending.Status())
}

func TestAcceptWindowCommandHandler_Handle_NoPendingProposal(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	pending := pickupOrder(buyerID, supplierID)

	cmd, err := commands.NewAcceptWindowCommand(pending.ID(), supplierActor(supplierID))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptWindowCommandHandler(factory, silentPublisher())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
}
