package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrProposeWindowCommandIsNotConstructed = errors.New(
		"ProposeWindowCommand must be created via NewProposeWindowCommand constructor",
	)
)

// ProposeWindowCommand represents a request to open window negotiation with a
// fresh delivery window proposal. Either party may propose; the counterparty
// answers by accepting or countering.
type ProposeWindowCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	window  kernel.Window

	guard guard.ConstructorGuard
}

// NewProposeWindowCommand creates a command to propose a delivery window.
// Validates that the order ID, the acting party and the window are
// well-formed. Whether the proposal is legal in the order's current state is
// decided by the aggregate.
func NewProposeWindowCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	window kernel.Window,
) (ProposeWindowCommand, error) {
	proposeCommand := ProposeWindowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		proposeCommand.setOrderID(orderID),
		proposeCommand.setActor(actor),
		proposeCommand.setWindow(window),
	); err != nil {
		return ProposeWindowCommand{}, err
	}

	return proposeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ProposeWindowCommand) Validate() error {
	return c.guard.Validate(ErrProposeWindowCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c ProposeWindowCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party authoring the proposal.
func (c ProposeWindowCommand) Actor() kernel.Actor {
	return c.actor
}

// Window returns the proposed delivery window.
func (c ProposeWindowCommand) Window() kernel.Window {
	return c.window
}

func (c *ProposeWindowCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProposeWindowCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ProposeWindowCommand) setWindow(window kernel.Window) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}
