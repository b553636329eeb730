package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordHandoverCommandHandler_Handle_DeliverySuccess(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	inTransit := confirmedOrder(buyerID, supplierID)
	require.NoError(t, inTransit.BeginTransit(kernel.RoleSupplier, time.Now()))

	cmd, err := commands.NewRecordHandoverCommand(
		inTransit.ID(), supplierActor(supplierID), handover.KindDelivery,
		[]string{"photos/site-gate.jpg"}, 40, "bag", "", "left at gate")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	handoverRepo := new(MockHandoverRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, inTransit.ID()).Return(inTransit, nil).Once()
	uow.On("HandoverRepository").Return(handoverRepo).Once()
	handoverRepo.On("Add", mock.Anything, mock.AnythingOfType("*handover.Handover")).
		Run(func(args mock.Arguments) {
			event := args.Get(1).(*handover.Handover)
			assert.True(t, event.OrderID().IsEqual(inTransit.ID()))
			assert.Equal(t, handover.ResolutionOpen, event.Resolution())
			assert.Equal(t, event.OccurredAt().Add(handover.DeliveryConfirmationTTL), event.ConfirmationDeadline())
		}).
		Return(nil).Once()
	orderRepo.On("Update", mock.Anything, inTransit).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordHandoverCommandHandler(factory, silentPublisher())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, inTransit.Status())
	orderRepo.AssertExpectations(t)
	handoverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordHandoverCommandHandler_Handle_RentalFromConfirmed(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	confirmed := confirmedOrder(buyerID, supplierID)

	cmd, err := commands.NewRecordHandoverCommand(
		confirmed.ID(), buyerActor(buyerID), handover.KindRentalHandover,
		[]string{"photos/excavator.jpg"}, 0, "", "scratches on left track", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	handoverRepo := new(MockHandoverRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, confirmed.ID()).Return(confirmed, nil).Once()
	uow.On("HandoverRepository").Return(handoverRepo).Once()
	handoverRepo.On("Add", mock.Anything, mock.AnythingOfType("*handover.Handover")).
		Run(func(args mock.Arguments) {
			event := args.Get(1).(*handover.Handover)
			assert.Equal(t, handover.KindRentalHandover, event.Kind())
			assert.Equal(t, event.OccurredAt().Add(handover.RentalHandoverConfirmationTTL), event.ConfirmationDeadline())
		}).
		Return(nil).Once()
	orderRepo.On("Update", mock.Anything, confirmed).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordHandoverCommandHandler(factory, silentPublisher())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Delivered, confirmed.Status())
}

func TestRecordHandoverCommandHandler_Handle_DeliveryRequiresTransit(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	confirmed := confirmedOrder(kernel.NewUUID(), supplierID)

	cmd, err := commands.NewRecordHandoverCommand(
		confirmed.ID(), supplierActor(supplierID), handover.KindDelivery,
		[]string{"photos/site-gate.jpg"}, 40, "bag", "", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, confirmed.ID()).Return(confirmed, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordHandoverCommandHandler(factory, silentPublisher())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.Confirmed, confirmed.Status())
}

func TestNewRecordHandoverCommand_KindSpecificValidation(t *testing.T) {
	orderID := kernel.NewUUID()
	actor := supplierActor(kernel.NewUUID())

	t.Run("should reject delivery without quantity", func(t *testing.T) {
		_, err := commands.NewRecordHandoverCommand(
			orderID, actor, handover.KindDelivery, []string{"p.jpg"}, 0, "bag", "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject rental handover without condition", func(t *testing.T) {
		_, err := commands.NewRecordHandoverCommand(
			orderID, actor, handover.KindRentalHandover, []string{"p.jpg"}, 0, "", "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
