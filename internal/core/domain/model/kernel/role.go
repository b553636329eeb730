package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies which side of an order a party acts for.
// It is a closed enum; any value outside the declared constants is invalid.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleBuyer is the party that placed the order.
	RoleBuyer

	// RoleSupplier is the party that fulfills the order.
	RoleSupplier
)

// getRoleStrings returns the wire/display names of all roles.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleBuyer:    "buyer",
		RoleSupplier: "supplier",
	}
}

// RoleFromString parses a role from its wire representation
// ("buyer" or "supplier").
func RoleFromString(s string) (Role, error) {
	switch s {
	case "buyer":
		return RoleBuyer, nil
	case "supplier":
		return RoleSupplier, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// String returns the wire name of the role ("buyer", "supplier" or "unknown").
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Counterparty returns the opposite role. The counterparty of an invalid role
// is invalid.
func (r Role) Counterparty() Role {
	switch r {
	case RoleBuyer:
		return RoleSupplier
	case RoleSupplier:
		return RoleBuyer
	default:
		return RoleUnknown
	}
}

// Validate checks if the Role value is one of the declared roles.
func (r Role) Validate() error {
	if r != RoleBuyer && r != RoleSupplier {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the authenticated party on whose behalf an operation runs.
// The upstream request layer authenticates the user; the core only checks
// that the actor is a party to the order and that its role is allowed to
// perform the attempted transition.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from a party identifier and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role}, nil
}

// ID returns the party identifier of the actor.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the claimed role of the actor.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks if the Actor is properly constructed.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
