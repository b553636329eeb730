package handover

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Confirmation windows per handover kind. Derived from the occurrence time
// and persisted; the scanner re-derives due timers from storage after a
// restart.
const (
	DeliveryConfirmationTTL       = 24 * time.Hour
	RentalHandoverConfirmationTTL = 2 * time.Hour
)

// Kind distinguishes a goods delivery from a rental equipment handover.
// The kind determines the legal source order state and the confirmation
// window length.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindDelivery is the handover of purchased goods at the destination.
	// Recorded by the supplier while the order is in transit; the buyer has
	// 24 hours to confirm or report an issue.
	KindDelivery

	// KindRentalHandover is the handover of rented equipment.
	// Recorded by either party on a confirmed order; the counterparty has
	// 2 hours to confirm or report an issue.
	KindRentalHandover
)

// KindFromString parses a kind from its wire representation
// ("delivery" or "rental_handover").
func KindFromString(s string) (Kind, error) {
	switch s {
	case "delivery":
		return KindDelivery, nil
	case "rental_handover":
		return KindRentalHandover, nil
	default:
		return KindUnknown, errs.NewValueIsInvalidErrorWithCause("handover kind",
			fmt.Errorf("%q is not a valid handover kind", s))
	}
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDelivery:
		return "delivery"
	case KindRentalHandover:
		return "rental_handover"
	default:
		return "unknown"
	}
}

// ConfirmationTTL returns how long the buyer has to respond after the
// handover occurred.
func (k Kind) ConfirmationTTL() time.Duration {
	switch k {
	case KindDelivery:
		return DeliveryConfirmationTTL
	case KindRentalHandover:
		return RentalHandoverConfirmationTTL
	default:
		return 0
	}
}

// ViaTransit reports whether this kind requires the order to be in transit
// when the handover is recorded.
func (k Kind) ViaTransit() bool {
	return k == KindDelivery
}

// Validate checks if the Kind is one of the declared kinds.
func (k Kind) Validate() error {
	if k != KindDelivery && k != KindRentalHandover {
		return errs.NewValueIsInvalidErrorWithCause("handover kind",
			fmt.Errorf("%d is not a valid handover kind", k))
	}
	return nil
}
