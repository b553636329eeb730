package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeliveryMode determines how the goods reach the buyer.
type DeliveryMode int

const (
	// ModeUnknown represents an invalid or undefined delivery mode.
	ModeUnknown DeliveryMode = iota

	// ModePickup means the buyer collects at the supplier's site.
	ModePickup

	// ModeDelivery means the supplier delivers to the buyer's destination.
	ModeDelivery
)

// DeliveryModeFromString parses a delivery mode from its wire representation
// ("pickup" or "delivery").
func DeliveryModeFromString(s string) (DeliveryMode, error) {
	switch s {
	case "pickup":
		return ModePickup, nil
	case "delivery":
		return ModeDelivery, nil
	default:
		return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("delivery mode",
			fmt.Errorf("%q is not a valid delivery mode", s))
	}
}

// String returns the wire name of the delivery mode.
func (m DeliveryMode) String() string {
	switch m {
	case ModePickup:
		return "pickup"
	case ModeDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// Validate checks if the DeliveryMode is one of the declared modes.
func (m DeliveryMode) Validate() error {
	if m != ModePickup && m != ModeDelivery {
		return errs.NewValueIsInvalidErrorWithCause("delivery mode",
			fmt.Errorf("%d is not a valid delivery mode", m))
	}
	return nil
}

// Destination is the delivery address with coordinates.
// Required iff the order's delivery mode is ModeDelivery.
type Destination struct {
	address   string
	latitude  float64
	longitude float64
}

// NewDestination creates a Destination after validating the address and the
// coordinate ranges.
func NewDestination(address string, latitude, longitude float64) (Destination, error) {
	if address == "" {
		return Destination{}, errs.NewValueIsRequiredError("destination address")
	}
	if latitude < -90 || latitude > 90 {
		return Destination{}, errs.NewValueIsOutOfRangeError("latitude", latitude, -90, 90)
	}
	if longitude < -180 || longitude > 180 {
		return Destination{}, errs.NewValueIsOutOfRangeError("longitude", longitude, -180, 180)
	}

	return Destination{address: address, latitude: latitude, longitude: longitude}, nil
}

// Address returns the street address of the destination.
func (d Destination) Address() string {
	return d.address
}

// Latitude returns the destination latitude in degrees.
func (d Destination) Latitude() float64 {
	return d.latitude
}

// Longitude returns the destination longitude in degrees.
func (d Destination) Longitude() float64 {
	return d.longitude
}

// LineItem is one commercial line of an order. The core treats quantities and
// prices as opaque data computed upstream; they are carried, never recomputed.
type LineItem struct {
	description string
	quantity    float64
	unit        string
	unitPrice   int64
}

// NewLineItem creates a LineItem. Unit price is in minor currency units.
func NewLineItem(description string, quantity float64, unit string, unitPrice int64) (LineItem, error) {
	if description == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item description")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("line item quantity",
			fmt.Errorf("%v is not greater than 0", quantity))
	}
	if unit == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item unit")
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("line item unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return LineItem{description: description, quantity: quantity, unit: unit, unitPrice: unitPrice}, nil
}

// Description returns the human-readable description of the line.
func (l LineItem) Description() string {
	return l.description
}

// Quantity returns the ordered quantity.
func (l LineItem) Quantity() float64 {
	return l.quantity
}

// Unit returns the unit of measure (e.g. "bag", "m3", "day").
func (l LineItem) Unit() string {
	return l.unit
}

// UnitPrice returns the price per unit in minor currency units.
func (l LineItem) UnitPrice() int64 {
	return l.unitPrice
}
