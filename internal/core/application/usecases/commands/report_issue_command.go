package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReportIssueCommandIsNotConstructed = errors.New(
		"ReportIssueCommand must be created via NewReportIssueCommand constructor",
	)
	ErrIssueReasonIsRequired = errors.New("issue reason is required")
)

// ReportIssueCommand represents the buyer's report that the recorded handover
// is not acceptable, routing the order into dispute.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	reason  string

	guard guard.ConstructorGuard
}

// NewReportIssueCommand creates a command to report a handover issue.
// The reason is mandatory; disputes without a stated problem are not
// actionable by mediation.
func NewReportIssueCommand(orderID kernel.UUID, actor kernel.Actor, reason string) (ReportIssueCommand, error) {
	issueCommand := ReportIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		issueCommand.setOrderID(orderID),
		issueCommand.setActor(actor),
		issueCommand.setReason(reason),
	); err != nil {
		return ReportIssueCommand{}, err
	}

	return issueCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

// OrderID returns the identifier of the disputed order.
func (c ReportIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the reporting party.
func (c ReportIssueCommand) Actor() kernel.Actor {
	return c.actor
}

// Reason returns the stated problem with the handover.
func (c ReportIssueCommand) Reason() string {
	return c.reason
}

func (c *ReportIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportIssueCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ReportIssueCommand) setReason(reason string) error {
	if reason == "" {
		return ErrIssueReasonIsRequired
	}

	c.reason = reason
	return nil
}
