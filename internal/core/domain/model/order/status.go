package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders can
// only follow the fulfillment workflow; any transition not enumerated here
// is rejected as a conflict.
//
// State transitions:
//
//	Pending ──accept window──> Confirmed ──begin transit──> InTransit
//	   │                          │    │                        │
//	   │                          │    └──rental handover───┐   │
//	   └────────cancel────────────┘                         ▼   ▼
//	            (Cancelled)                               Delivered
//	                                                     │    │    │
//	                                          confirm────┘    │    └───deadline
//	                                        (Completed)    report     expiry
//	                                                       issue    (Completed)
//	                                                    (Disputed)
//
// Completed, Cancelled and Disputed are terminal: no operation may move an
// order out of them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order exists but no delivery window
	// has been agreed yet.
	Pending

	// Confirmed indicates both parties agreed on a promised window.
	// Re-negotiation of the window is still possible in this status.
	Confirmed

	// InTransit indicates the supplier started physical delivery.
	InTransit

	// Delivered indicates a handover event was recorded and the buyer's
	// confirmation window is running.
	Delivered

	// Completed indicates the buyer confirmed the handover, or the
	// confirmation deadline expired without buyer action. Terminal.
	Completed

	// Disputed indicates the buyer reported an issue with the handover.
	// Terminal for this core; resolution happens through external mediation.
	Disputed

	// Cancelled indicates either party cancelled before any handover.
	// Terminal.
	Cancelled
)

// getStatusStrings returns the wire names of all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		InTransit: "in_transit",
		Delivered: "delivered",
		Completed: "completed",
		Disputed:  "disputed",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns only the statuses an order may legally hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		InTransit: "in_transit",
		Delivered: "delivered",
		Completed: "completed",
		Disputed:  "disputed",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses a status from its wire name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the declared order statuses.
// Used when reconstructing orders from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Disputed || s == Cancelled
}

// ValidateNegotiable checks that window proposals are still possible.
// Negotiation is open while the order is Pending (initial agreement) or
// Confirmed (re-negotiation of an already promised window).
func (s Status) ValidateNegotiable() error {
	if s != Pending && s != Confirmed {
		return errs.NewConflictErrorWithCause(
			"window negotiation is closed",
			fmt.Errorf("order is %s", s.String()),
		)
	}
	return nil
}

// Confirm transitions the status to Confirmed when a proposal is accepted.
//
// Valid transitions:
//   - Pending -> Confirmed (first agreed window)
//   - Confirmed -> Confirmed (re-negotiated window accepted)
func (s Status) Confirm() (Status, error) {
	if s != Pending && s != Confirmed {
		return 0, errs.NewConflictErrorWithCause(
			"order cannot be confirmed",
			fmt.Errorf("order is %s", s.String()),
		)
	}

	return Confirmed, nil
}

// BeginTransit transitions the status to InTransit.
//
// Valid transitions:
//   - Confirmed -> InTransit
func (s Status) BeginTransit() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewConflictErrorWithCause(
			"transit cannot start",
			fmt.Errorf("order is %s, not %s", s.String(), Confirmed.String()),
		)
	}

	return InTransit, nil
}

// Deliver transitions the status to Delivered when a handover is recorded.
// The caller is responsible for checking the kind-specific source state
// (InTransit for deliveries, Confirmed for rental handovers).
func (s Status) Deliver() (Status, error) {
	if s != InTransit && s != Confirmed {
		return 0, errs.NewConflictErrorWithCause(
			"handover cannot be recorded",
			fmt.Errorf("order is %s", s.String()),
		)
	}

	return Delivered, nil
}

// Complete transitions the status to Completed, either through explicit buyer
// confirmation or through deadline-driven auto-completion.
//
// Valid transitions:
//   - Delivered -> Completed
func (s Status) Complete() (Status, error) {
	if s != Delivered {
		return 0, errs.NewConflictErrorWithCause(
			"order cannot be completed",
			fmt.Errorf("order is %s, not %s", s.String(), Delivered.String()),
		)
	}

	return Completed, nil
}

// Dispute transitions the status to Disputed when the buyer reports an issue.
//
// Valid transitions:
//   - Delivered -> Disputed
func (s Status) Dispute() (Status, error) {
	if s != Delivered {
		return 0, errs.NewConflictErrorWithCause(
			"issue cannot be reported",
			fmt.Errorf("order is %s, not %s", s.String(), Delivered.String()),
		)
	}

	return Disputed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Confirmed -> Cancelled (before transit)
//
// Once goods move or a handover exists, the only path away from completion is
// the dispute route.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Confirmed {
		return 0, errs.NewConflictErrorWithCause(
			"order cannot be cancelled",
			fmt.Errorf("order is %s", s.String()),
		)
	}

	return Cancelled, nil
}
