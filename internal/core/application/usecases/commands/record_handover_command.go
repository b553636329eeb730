package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordHandoverCommandIsNotConstructed = errors.New(
		"RecordHandoverCommand must be created via NewRecordHandoverCommand constructor",
	)
)

// RecordHandoverCommand represents a request to record that physical handover
// happened: a delivery arriving from transit, or a rental equipment handover
// on a confirmed order. Carries the photo evidence and the quantity or
// condition record that the confirmation workflow is anchored to.
type RecordHandoverCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     kernel.Actor
	kind      handover.Kind
	photoRefs []string
	record    handover.QuantityRecord
	notes     string

	guard guard.ConstructorGuard
}

// NewRecordHandoverCommand creates a command to record a handover event.
// The quantity/condition fields are validated against the handover kind:
// deliveries need a positive quantity with a unit, rental handovers need a
// condition note. Evidence rules (at least one photo) are enforced by the
// Handover aggregate when the handler runs.
func NewRecordHandoverCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	kind handover.Kind,
	photoRefs []string,
	quantity float64,
	unit string,
	condition string,
	notes string,
) (RecordHandoverCommand, error) {
	handoverCommand := RecordHandoverCommand{
		photoRefs: photoRefs,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		handoverCommand.setOrderID(orderID),
		handoverCommand.setActor(actor),
		handoverCommand.setKind(kind),
	); err != nil {
		return RecordHandoverCommand{}, err
	}

	record, err := handover.NewQuantityRecord(kind, quantity, unit, condition)
	if err != nil {
		return RecordHandoverCommand{}, err
	}
	handoverCommand.record = record

	return handoverCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordHandoverCommand) Validate() error {
	return c.guard.Validate(ErrRecordHandoverCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being handed over.
func (c RecordHandoverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party recording the handover.
func (c RecordHandoverCommand) Actor() kernel.Actor {
	return c.actor
}

// Kind returns the handover kind.
func (c RecordHandoverCommand) Kind() handover.Kind {
	return c.kind
}

// PhotoRefs returns the photo evidence references.
func (c RecordHandoverCommand) PhotoRefs() []string {
	return c.photoRefs
}

// Record returns the validated quantity/condition record.
func (c RecordHandoverCommand) Record() handover.QuantityRecord {
	return c.record
}

// Notes returns the free-text notes attached to the handover.
func (c RecordHandoverCommand) Notes() string {
	return c.notes
}

func (c *RecordHandoverCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordHandoverCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RecordHandoverCommand) setKind(kind handover.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}
