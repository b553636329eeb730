package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler handles order cancellation. Cancellation is legal
// for either party while the order is "pending" or "confirmed", but is
// refused as soon as any handover event exists for the order, because
// recorded physical evidence must be resolved through confirmation or
// dispute, never silently discarded.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
// Requires a UoWFactory because the handover-existence check must run in the
// same transaction as the status change.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, publisher EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	hasHandover, err := uow.HandoverRepository().ExistsForOrder(ctx, orderAggregate.ID())
	if err != nil {
		return err
	}

	if err = orderAggregate.Cancel(role, hasHandover, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.EventOrderCancelled, orderAggregate.ID(),
		counterpartyOf(orderAggregate, role), statusPayload(orderAggregate))

	return nil
}
