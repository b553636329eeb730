package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// EventPublisher delivers notification events after a transition committed.
// Dispatch is best-effort: a notifier failure is logged and suppressed, never
// propagated, because the business outcome is already durable by the time an
// event is published.
type EventPublisher struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher over the given notification trigger.
func NewEventPublisher(notifier ports.Notifier, logger *slog.Logger) EventPublisher {
	return EventPublisher{
		notifier: notifier,
		logger:   logger.With("component", "event_publisher"),
	}
}

// Publish sends one typed event to one recipient.
func (p EventPublisher) Publish(
	ctx context.Context,
	event ports.EventType,
	orderID kernel.UUID,
	recipientID kernel.UUID,
	payload map[string]any,
) {
	if p.notifier == nil {
		return
	}

	if err := p.notifier.Notify(ctx, event, orderID, recipientID, payload); err != nil {
		p.logger.WarnContext(ctx, "Notification dispatch failed",
			"event", string(event), "order_id", orderID.String(), "error", err)
	}
}

// counterpartyOf returns the party to notify about an action performed by
// the given role.
func counterpartyOf(o *order.Order, actingRole kernel.Role) kernel.UUID {
	if actingRole == kernel.RoleBuyer {
		return o.SupplierID()
	}
	return o.BuyerID()
}

// statusPayload is the minimal payload every order event carries.
func statusPayload(o *order.Order) map[string]any {
	return map[string]any{
		"order_number": o.Number(),
		"status":       o.Status().String(),
	}
}
