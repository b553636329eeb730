package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCounterProposeWindowCommandIsNotConstructed = errors.New(
		"CounterProposeWindowCommand must be created via NewCounterProposeWindowCommand constructor",
	)
)

// CounterProposeWindowCommand represents a request to answer the pending
// window proposal with a different window, flipping proposal authorship to
// the countering party.
type CounterProposeWindowCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	window  kernel.Window

	guard guard.ConstructorGuard
}

// NewCounterProposeWindowCommand creates a command to counter the pending
// proposal with a new window.
func NewCounterProposeWindowCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	window kernel.Window,
) (CounterProposeWindowCommand, error) {
	counterCommand := CounterProposeWindowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		counterCommand.setOrderID(orderID),
		counterCommand.setActor(actor),
		counterCommand.setWindow(window),
	); err != nil {
		return CounterProposeWindowCommand{}, err
	}

	return counterCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CounterProposeWindowCommand) Validate() error {
	return c.guard.Validate(ErrCounterProposeWindowCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c CounterProposeWindowCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party countering the proposal.
func (c CounterProposeWindowCommand) Actor() kernel.Actor {
	return c.actor
}

// Window returns the counter-proposed delivery window.
func (c CounterProposeWindowCommand) Window() kernel.Window {
	return c.window
}

func (c *CounterProposeWindowCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CounterProposeWindowCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CounterProposeWindowCommand) setWindow(window kernel.Window) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}
