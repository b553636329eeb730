package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// AcceptWindowCommandHandler handles acceptance of a pending window proposal.
// On success the proposed window becomes the promised window and a pending
// order advances to "confirmed".
type AcceptWindowCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewAcceptWindowCommandHandler creates a handler for proposal acceptance
// operations.
func NewAcceptWindowCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) AcceptWindowCommandHandler {
	return AcceptWindowCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the acceptance command.
func (h *AcceptWindowCommandHandler) Handle(ctx context.Context, cmd AcceptWindowCommand) error {
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

	if err = orderAggregate.AcceptWindow(role, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := statusPayload(orderAggregate)
	if promised := orderAggregate.PromisedWindow(); promised != nil {
		payload["window_start"] = promised.Start()
		payload["window_end"] = promised.End()
	}
	h.publisher.Publish(ctx, ports.EventWindowAccepted, orderAggregate.ID(),
		counterpartyOf(orderAggregate, role), payload)

	return nil
}
