package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// ProposeWindowCommandHandler handles the business logic for opening window
// negotiation. Resolves the actor's role on the order, records the proposal
// and notifies the counterparty.
type ProposeWindowCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewProposeWindowCommandHandler creates a handler for window proposal
// operations.
func NewProposeWindowCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) ProposeWindowCommandHandler {
	return ProposeWindowCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the window proposal command.
// Loads the order, applies the proposal through the aggregate and persists
// the result with an optimistic concurrency check.
func (h *ProposeWindowCommandHandler) Handle(ctx context.Context, cmd ProposeWindowCommand) error {
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

	if err = orderAggregate.ProposeWindow(role, cmd.Window(), now); err != nil {
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
	h.publisher.Publish(ctx, ports.EventWindowProposed, orderAggregate.ID(),
		counterpartyOf(orderAggregate, role), payload)

	return nil
}
