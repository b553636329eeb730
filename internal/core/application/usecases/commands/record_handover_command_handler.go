package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// RecordHandoverCommandHandler handles handover recording. In one transaction
// it moves the order to "delivered" and creates the open handover event whose
// confirmation deadline drives the time-boxed confirmation workflow.
//
// Example:
//
//	handler := NewRecordHandoverCommandHandler(uowFactory, publisher)
//	cmd, _ := NewRecordHandoverCommand(orderID, supplier, handover.KindDelivery,
//	    []string{"photos/abc.jpg"}, 12.5, "m3", "", "left at gate")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("handover recording failed: %w", err)
//	}
//	// Buyer now has 24h to confirm or report an issue
type RecordHandoverCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
}

// NewRecordHandoverCommandHandler creates a handler for handover recording
// operations. Requires a UoWFactory because the order and the handover event
// must commit atomically.
func NewRecordHandoverCommandHandler(uowFactory UoWFactory, publisher EventPublisher) RecordHandoverCommandHandler {
	return RecordHandoverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the handover recording command.
// The handover kind decides the legal source state and the allowed recorder:
// deliveries require transit and the supplier, rental handovers require a
// confirmed order and allow either party.
func (h *RecordHandoverCommandHandler) Handle(ctx context.Context, cmd RecordHandoverCommand) error {
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

	if err = orderAggregate.MarkDelivered(role, cmd.Kind().ViaTransit(), now); err != nil {
		return err
	}

	handoverEvent, err := handover.NewHandover(
		kernel.NewUUID(),
		orderAggregate.ID(),
		cmd.Kind(),
		cmd.PhotoRefs(),
		cmd.Record(),
		cmd.Notes(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.HandoverRepository().Add(ctx, handoverEvent); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := statusPayload(orderAggregate)
	payload["handover_id"] = handoverEvent.ID().String()
	payload["kind"] = handoverEvent.Kind().String()
	payload["confirmation_deadline"] = handoverEvent.ConfirmationDeadline()
	h.publisher.Publish(ctx, ports.EventHandoverRecorded, orderAggregate.ID(),
		counterpartyOf(orderAggregate, role), payload)

	return nil
}
