package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Assigns a human-readable order number and persists the order in "pending"
// status with no window agreed yet.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateOrderCommand(orderID, buyerID, supplierID, lines, total, mode, destination)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now pending and either party may propose a delivery window
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Creates the order in "pending" status and notifies the supplier once the
// order is durable.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		order.NewNumber(now),
		cmd.BuyerID(),
		cmd.SupplierID(),
		cmd.Lines(),
		cmd.TotalAmount(),
		cmd.Mode(),
		cmd.Destination(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.EventOrderCreated, newOrder.ID(), newOrder.SupplierID(),
		statusPayload(newOrder))

	return nil
}
