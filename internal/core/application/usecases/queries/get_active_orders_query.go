package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves all non-terminal orders a party is involved
// in, on either side.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(partyID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//	fmt.Printf("Party has %d orders in flight\n", len(orders))
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	partyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for a party's active orders.
func NewGetActiveOrdersQuery(partyID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := partyID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		partyID: partyID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// PartyID returns the identifier of the party whose orders are requested.
func (q GetActiveOrdersQuery) PartyID() kernel.UUID {
	return q.partyID
}

// GetActiveOrdersQueryResponse is one active order row: enough to render a
// worklist without loading the full aggregates.
type GetActiveOrdersQueryResponse struct {
	ID             kernel.UUID
	Number         string
	Status         string
	ProposalStatus string
	PromisedWindow *WindowResponse
	Version        int
	UpdatedAt      time.Time
}
