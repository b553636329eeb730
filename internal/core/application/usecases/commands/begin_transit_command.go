package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrBeginTransitCommandIsNotConstructed = errors.New(
		"BeginTransitCommand must be created via NewBeginTransitCommand constructor",
	)
)

// BeginTransitCommand represents a supplier's request to start physical
// delivery of a confirmed order.
type BeginTransitCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewBeginTransitCommand creates a command to start transit.
func NewBeginTransitCommand(orderID kernel.UUID, actor kernel.Actor) (BeginTransitCommand, error) {
	transitCommand := BeginTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitCommand.setOrderID(orderID),
		transitCommand.setActor(actor),
	); err != nil {
		return BeginTransitCommand{}, err
	}

	return transitCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c BeginTransitCommand) Validate() error {
	return c.guard.Validate(ErrBeginTransitCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to move into transit.
func (c BeginTransitCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party starting transit.
func (c BeginTransitCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *BeginTransitCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *BeginTransitCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
