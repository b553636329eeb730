package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ProposalStatus represents the lifecycle of the in-flight window proposal on
// an order. Unlike Status, its zero value (ProposalNone) is a legal state:
// a freshly created order carries no proposal.
type ProposalStatus int

const (
	// ProposalNone means no proposal is currently in flight.
	ProposalNone ProposalStatus = iota

	// ProposalPending means one party proposed a window and the counterparty
	// has not yet accepted or countered. At most one proposal may be pending.
	ProposalPending

	// ProposalAccepted means the latest proposal was accepted and copied into
	// the promised window.
	ProposalAccepted

	// ProposalRejected means the latest proposal was rejected without a
	// counter-offer.
	ProposalRejected
)

// getProposalStatusStrings returns the wire names of all proposal statuses.
func getProposalStatusStrings() map[ProposalStatus]string {
	return map[ProposalStatus]string{
		ProposalNone:     "none",
		ProposalPending:  "pending",
		ProposalAccepted: "accepted",
		ProposalRejected: "rejected",
	}
}

// ProposalStatusFromString parses a proposal status from its wire name.
func ProposalStatusFromString(s string) (ProposalStatus, error) {
	for status, name := range getProposalStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("proposal status",
		fmt.Errorf("%q is not a valid proposal status", s))
}

// Validate checks if the ProposalStatus is one of the declared values.
func (p ProposalStatus) Validate() error {
	if _, ok := getProposalStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("proposal status",
			fmt.Errorf("%d is not a valid proposal status", p))
	}
	return nil
}

// String returns the wire name of the proposal status.
func (p ProposalStatus) String() string {
	if s, ok := getProposalStatusStrings()[p]; ok {
		return s
	}
	return "unknown"
}
