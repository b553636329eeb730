// Package guard implements the constructor guard pattern used by commands and
// value objects to reject zero-value instances that bypassed their
// constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. A zero-value guard fails validation, so any struct
// embedding it can detect direct instantiation.
//
// Example:
//
//	type ConfirmDeliveryCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewConfirmDeliveryCommand(orderID kernel.UUID) (ConfirmDeliveryCommand, error) {
//	    ...
//	    return ConfirmDeliveryCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was built through its constructor,
// otherwise the supplied error (or ErrDefaultConstructorGuard when err is nil).
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
