// Package order provides the Order aggregate root for the fulfillment core.
// It owns the order status state machine and the delivery-window negotiation
// protocol between buyer and supplier.
//
// The package includes:
//   - Order: the aggregate root managing identity, parties, commercial lines,
//     scheduling fields and the order lifecycle
//   - Status: a closed state machine enforcing the legal transitions
//   - ProposalStatus: the lifecycle of an in-flight window proposal
//   - DeliveryMode, Destination, LineItem: supporting value objects
//
// Key business rules:
//   - At most one proposal is pending at any time
//   - The promised window is set only by accepting a counterparty's proposal,
//     never unilaterally by its author
//   - Status follows pending -> confirmed -> in_transit -> delivered ->
//     completed, with cancelled/disputed side exits; completed, cancelled and
//     disputed are terminal
//   - Cancellation is only possible before any handover evidence exists
//
// The package follows the same aggregate conventions as the rest of the
// domain model: private fields, validating constructors, and a Validate
// method guarding against bypassed construction.
package order
