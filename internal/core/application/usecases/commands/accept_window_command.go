package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAcceptWindowCommandIsNotConstructed = errors.New(
		"AcceptWindowCommand must be created via NewAcceptWindowCommand constructor",
	)
)

// AcceptWindowCommand represents a request to accept the pending window
// proposal, turning it into the order's promised window.
type AcceptWindowCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewAcceptWindowCommand creates a command to accept the pending proposal.
func NewAcceptWindowCommand(orderID kernel.UUID, actor kernel.Actor) (AcceptWindowCommand, error) {
	acceptCommand := AcceptWindowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOrderID(orderID),
		acceptCommand.setActor(actor),
	); err != nil {
		return AcceptWindowCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptWindowCommand) Validate() error {
	return c.guard.Validate(ErrAcceptWindowCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c AcceptWindowCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party accepting the proposal.
func (c AcceptWindowCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *AcceptWindowCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptWindowCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
