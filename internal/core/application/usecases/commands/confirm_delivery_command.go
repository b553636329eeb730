package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
	)
)

// ConfirmDeliveryCommand represents the buyer's explicit confirmation that
// the recorded handover is acceptable, closing the order as completed.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm a delivered order.
func NewConfirmDeliveryCommand(orderID kernel.UUID, actor kernel.Actor) (ConfirmDeliveryCommand, error) {
	confirmCommand := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		confirmCommand.setOrderID(orderID),
		confirmCommand.setActor(actor),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return confirmCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being confirmed.
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the confirming party.
func (c ConfirmDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ConfirmDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmDeliveryCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
