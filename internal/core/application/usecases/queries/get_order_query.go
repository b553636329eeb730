// Package queries contains the read-side operations of the fulfillment core.
// Query handlers bypass the aggregates and read denormalized rows straight
// from the database, so they stay cheap even while the write side holds
// row-level locks.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full summary of a single order, including the
// negotiation fields and the open handover deadline when one is running.
// Only the order's parties may read it.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", summary.Number, summary.Status)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order summary.
func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := actor.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	query.orderID = orderID
	query.actor = actor
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the requesting party.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// WindowResponse is a delivery window in a query response.
type WindowResponse struct {
	Start time.Time
	End   time.Time
}

// DestinationResponse is the delivery destination in a query response.
type DestinationResponse struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// LineItemResponse is one commercial line item in a query response.
type LineItemResponse struct {
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   int64
}

// OpenHandoverResponse describes the pending confirmation when the order is
// delivered and the buyer's decision window is running.
type OpenHandoverResponse struct {
	ID                   kernel.UUID
	Kind                 string
	OccurredAt           time.Time
	ConfirmationDeadline time.Time
}

// GetOrderQueryResponse represents the full order summary returned to the
// order's parties. Version is included so clients can detect staleness after
// a conflict.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	Number     string
	BuyerID    kernel.UUID
	SupplierID kernel.UUID

	Lines       []LineItemResponse
	TotalAmount int64

	Mode        string
	Destination *DestinationResponse

	PromisedWindow *WindowResponse
	ProposedWindow *WindowResponse
	ProposedBy     string
	ProposalStatus string

	Status  string
	Version int

	OpenHandover *OpenHandoverResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}
