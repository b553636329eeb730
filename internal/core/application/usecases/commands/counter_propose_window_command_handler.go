package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// CounterProposeWindowCommandHandler handles counter-proposals during window
// negotiation. The proposal stays pending with authorship flipped, so
// negotiation can run any number of rounds until one side accepts.
type CounterProposeWindowCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewCounterProposeWindowCommandHandler creates a handler for counter-proposal
// operations.
func NewCounterProposeWindowCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
) CounterProposeWindowCommandHandler {
	return CounterProposeWindowCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the counter-proposal command.
func (h *CounterProposeWindowCommandHandler) Handle(ctx context.Context, cmd CounterProposeWindowCommand) error {
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

	if err = orderAggregate.CounterPropose(role, cmd.Window(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := statusPayload(orderAggregate)
	payload["window_start"] = cmd.Window().Start()
	payload["window_end"] = cmd.Window().End()
	h.publisher.Publish(ctx, ports.EventWindowCountered, orderAggregate.ID(),
		counterpartyOf(orderAggregate, role), payload)

	return nil
}
