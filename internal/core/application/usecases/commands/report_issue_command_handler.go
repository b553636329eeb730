package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// ReportIssueCommandHandler handles buyer issue reports on a recorded
// handover. The handover event is resolved as disputed and the order moves to
// "disputed" in the same transaction; resolution then happens through
// external mediation.
type ReportIssueCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
}

// NewReportIssueCommandHandler creates a handler for issue report operations.
func NewReportIssueCommandHandler(uowFactory UoWFactory, publisher EventPublisher) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the issue report command.
// Only the buyer may report, only while the order is "delivered" and the
// confirmation deadline has not passed.
func (h *ReportIssueCommandHandler) Handle(ctx context.Context, cmd ReportIssueCommand) error {
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

	if err = orderAggregate.ReportIssue(role, now); err != nil {
		return err
	}
	if err = handoverEvent.Dispute(now); err != nil {
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

	payload := statusPayload(orderAggregate)
	payload["reason"] = cmd.Reason()
	h.publisher.Publish(ctx, ports.EventIssueReported, orderAggregate.ID(),
		orderAggregate.SupplierID(), payload)

	return nil
}
