package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// BeginTransitCommandHandler handles the transition of a confirmed order into
// transit. Only the supplier may start transit; the buyer is notified once
// the transition is durable.
type BeginTransitCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewBeginTransitCommandHandler creates a handler for transit start
// operations.
func NewBeginTransitCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) BeginTransitCommandHandler {
	return BeginTransitCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transit start command.
func (h *BeginTransitCommandHandler) Handle(ctx context.Context, cmd BeginTransitCommand) error {
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

	if err = orderAggregate.BeginTransit(role, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.EventTransitStarted, orderAggregate.ID(),
		orderAggregate.BuyerID(), statusPayload(orderAggregate))

	return nil
}
