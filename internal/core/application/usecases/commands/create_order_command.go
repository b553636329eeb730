package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new fulfillment order
// between a buyer and a supplier. Encapsulates the commercial snapshot (line
// items and pre-computed total) and the fulfillment mode.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, buyerID, supplierID, lines, 125000, order.ModePickup, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created and awaiting window negotiation", orderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	buyerID     kernel.UUID
	supplierID  kernel.UUID
	lines       []order.LineItem
	totalAmount int64
	mode        order.DeliveryMode
	destination *order.Destination

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Structural validation happens here; the business rules (distinct parties,
// destination presence per mode, positive total) are enforced by the Order
// aggregate itself when the handler runs.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	supplierID kernel.UUID,
	lines []order.LineItem,
	totalAmount int64,
	mode order.DeliveryMode,
	destination *order.Destination,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		lines:       lines,
		totalAmount: totalAmount,
		mode:        mode,
		destination: destination,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setParties(buyerID, supplierID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the buyer party identifier.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SupplierID returns the supplier party identifier.
func (c CreateOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// Lines returns the commercial line items.
func (c CreateOrderCommand) Lines() []order.LineItem {
	return c.lines
}

// TotalAmount returns the pre-computed order total in minor currency units.
func (c CreateOrderCommand) TotalAmount() int64 {
	return c.totalAmount
}

// Mode returns the fulfillment mode.
func (c CreateOrderCommand) Mode() order.DeliveryMode {
	return c.mode
}

// Destination returns the delivery destination, or nil for pickup orders.
func (c CreateOrderCommand) Destination() *order.Destination {
	return c.destination
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setParties(buyerID, supplierID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	c.supplierID = supplierID
	return nil
}
