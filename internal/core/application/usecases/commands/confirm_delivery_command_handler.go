package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// ConfirmDeliveryCommandHandler handles explicit buyer confirmation of a
// recorded handover. The handover event is resolved as confirmed and the
// order completes in the same transaction.
//
// The handover resolution uses resolve-if-open semantics, so an explicit
// confirmation racing the auto-complete scanner yields exactly one winner.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery
// confirmation operations.
func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory, publisher EventPublisher) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the confirmation command.
// Only the buyer may confirm, only while the order is "delivered" and the
// confirmation deadline has not passed.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	role, err := orderAggregate.RoleOf(cmd.Actor())
	if err != nil {
		return err
	}

	handoverRepo := uow.HandoverRepository()
	handoverEvent, err := handoverRepo.GetOpenByOrder(ctx, orderAggregate.ID())
	if err != nil {
		return err
	}

	if err = orderAggregate.ConfirmDelivery(role, now); err != nil {
		return err
	}
	if err = handoverEvent.Confirm(now); err != nil {
		return err
	}

	if err = handoverRepo.Resolve(ctx, handoverEvent); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.EventOrderCompleted, orderAggregate.ID(),
		orderAggregate.SupplierID(), statusPayload(orderAggregate))

	return nil
}
