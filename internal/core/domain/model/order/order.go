package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root of the fulfillment core. It owns the order
// status, the window negotiation fields, and validates which operations are
// legal in which state for which party.
//
// Order maintains these invariants:
//   - Buyer and supplier are distinct and immutable after creation
//   - At most one window proposal is pending at any time
//   - The promised window is only ever set by accepting a proposal authored
//     by the counterparty
//   - Status transitions follow the Status state machine
//   - A destination is present iff the delivery mode is ModeDelivery
//
// All mutation goes through the transition methods below; each checks the
// acting role and the current state, and returns a typed error (validation,
// authorization or conflict) without changing state on rejection.
type Order struct {
	id         kernel.UUID
	number     string
	buyerID    kernel.UUID
	supplierID kernel.UUID

	lines       []LineItem
	totalAmount int64

	mode        DeliveryMode
	destination *Destination

	promisedWindow *kernel.Window
	proposedWindow *kernel.Window
	proposedBy     kernel.Role
	proposalStatus ProposalStatus

	status Status

	// version backs the optimistic concurrency check; every successful
	// persisted mutation increments it.
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status. This is the only way to
// create a valid order: all parameters are validated and the negotiation
// fields start empty.
//
// A destination is required when mode is ModeDelivery and must be absent for
// ModePickup. Buyer and supplier must be different parties. The total amount
// is opaque to the core but must be positive.
func NewOrder(
	id kernel.UUID,
	number string,
	buyerID kernel.UUID,
	supplierID kernel.UUID,
	lines []LineItem,
	totalAmount int64,
	mode DeliveryMode,
	destination *Destination,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:         Pending,
		proposalStatus: ProposalNone,
		version:        1,
		createdAt:      now.UTC(),
		updatedAt:      now.UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(buyerID, supplierID),
		o.setLines(lines),
		o.setTotalAmount(totalAmount),
		o.setFulfillment(mode, destination),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// creation-time business rules that no longer hold mid-lifecycle (e.g. a
// promised window may legitimately lie in the past). Structural validation
// still applies.
func RestoreOrder(
	id kernel.UUID,
	number string,
	buyerID kernel.UUID,
	supplierID kernel.UUID,
	lines []LineItem,
	totalAmount int64,
	mode DeliveryMode,
	destination *Destination,
	promisedWindow *kernel.Window,
	proposedWindow *kernel.Window,
	proposedBy kernel.Role,
	proposalStatus ProposalStatus,
	status Status,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		promisedWindow: promisedWindow,
		proposedWindow: proposedWindow,
		proposedBy:     proposedBy,
		proposalStatus: proposalStatus,
		status:         status,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(buyerID, supplierID),
		o.setLines(lines),
		o.setTotalAmount(totalAmount),
		o.setFulfillment(mode, destination),
		status.Validate(),
		proposalStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if proposalStatus == ProposalPending {
		if proposedWindow == nil {
			return nil, errs.NewValueIsRequiredError("proposed window for pending proposal")
		}
		if err := proposedBy.Validate(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// BuyerID returns the buyer party identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// SupplierID returns the supplier party identifier.
func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

// Lines returns the commercial line items. The returned slice is a copy.
func (o *Order) Lines() []LineItem {
	lines := make([]LineItem, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// TotalAmount returns the order total in minor currency units.
// Computed upstream; never recomputed here.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// Mode returns the delivery mode.
func (o *Order) Mode() DeliveryMode {
	return o.mode
}

// Destination returns the delivery destination, or nil for pickup orders.
func (o *Order) Destination() *Destination {
	return o.destination
}

// PromisedWindow returns the currently agreed window, or nil if no proposal
// has been accepted yet.
func (o *Order) PromisedWindow() *kernel.Window {
	return o.promisedWindow
}

// ProposedWindow returns the in-flight proposed window, or nil.
func (o *Order) ProposedWindow() *kernel.Window {
	return o.proposedWindow
}

// ProposedBy returns the author of the in-flight proposal
// (RoleUnknown when none is pending).
func (o *Order) ProposedBy() kernel.Role {
	return o.proposedBy
}

// ProposalStatus returns the state of the window negotiation.
func (o *Order) ProposalStatus() ProposalStatus {
	return o.proposalStatus
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic concurrency version.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// RoleOf resolves the acting party to its role on this order. This is the
// single authorization check applied by every operation: the actor must be
// the order's buyer or supplier, and the claimed role must match the party.
func (o *Order) RoleOf(actor kernel.Actor) (kernel.Role, error) {
	if err := actor.Validate(); err != nil {
		return kernel.RoleUnknown, err
	}

	switch {
	case actor.ID().IsEqual(o.buyerID):
		if actor.Role() != kernel.RoleBuyer {
			return kernel.RoleUnknown, errs.NewNotAuthorizedError("actor is the buyer but claims another role")
		}
		return kernel.RoleBuyer, nil
	case actor.ID().IsEqual(o.supplierID):
		if actor.Role() != kernel.RoleSupplier {
			return kernel.RoleUnknown, errs.NewNotAuthorizedError("actor is the supplier but claims another role")
		}
		return kernel.RoleSupplier, nil
	default:
		return kernel.RoleUnknown, errs.NewNotAuthorizedError("actor is not a party to this order")
	}
}

// ProposeWindow records a fresh window proposal authored by the given role.
//
// Legal while negotiation is open (Pending or Confirmed status) and no other
// proposal is pending; a pending proposal must be answered through
// AcceptWindow or CounterPropose instead. The window must start in the
// future.
func (o *Order) ProposeWindow(by kernel.Role, window kernel.Window, now time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateNegotiable(); err != nil {
		return err
	}
	if o.proposalStatus == ProposalPending {
		return errs.NewConflictErrorWithCause("a proposal is already pending",
			fmt.Errorf("proposed by %s", o.proposedBy.String()))
	}
	if err := window.NotBefore(now); err != nil {
		return err
	}

	o.proposedWindow = &window
	o.proposedBy = by
	o.proposalStatus = ProposalPending
	o.touch(now)
	return nil
}

// AcceptWindow accepts the pending proposal on behalf of the counterparty.
// A party cannot accept its own proposal. On success the proposed window
// becomes the promised window, the in-flight proposal fields are cleared, and
// a Pending order advances to Confirmed.
func (o *Order) AcceptWindow(by kernel.Role, now time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if o.proposalStatus != ProposalPending {
		return errs.NewConflictErrorWithCause("no pending proposal to accept",
			fmt.Errorf("proposal status is %s", o.proposalStatus.String()))
	}
	if by == o.proposedBy {
		return errs.NewConflictError("a party cannot accept its own proposal")
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.promisedWindow = o.proposedWindow
	o.proposedWindow = nil
	o.proposedBy = kernel.RoleUnknown
	o.proposalStatus = ProposalAccepted
	o.status = newStatus
	o.touch(now)
	return nil
}

// CounterPropose replaces the pending proposal with a new window authored by
// the counterparty, flipping proposal authorship while the proposal stays
// pending. Only the party that did not author the pending proposal may
// counter. There is no cap on negotiation rounds.
func (o *Order) CounterPropose(by kernel.Role, window kernel.Window, now time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateNegotiable(); err != nil {
		return err
	}
	if o.proposalStatus != ProposalPending {
		return errs.NewConflictErrorWithCause("no pending proposal to counter",
			fmt.Errorf("proposal status is %s", o.proposalStatus.String()))
	}
	if by == o.proposedBy {
		return errs.NewConflictError("a party cannot counter its own proposal")
	}
	if err := window.NotBefore(now); err != nil {
		return err
	}

	o.proposedWindow = &window
	o.proposedBy = by
	o.touch(now)
	return nil
}

// BeginTransit moves a confirmed order into transit. Supplier only.
func (o *Order) BeginTransit(by kernel.Role, now time.Time) error {
	if err := requireRole(by, kernel.RoleSupplier); err != nil {
		return err
	}

	newStatus, err := o.status.BeginTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// MarkDelivered records that physical handover happened and moves the order
// to Delivered. For deliveries the order must be InTransit and only the
// supplier may record it; for rental handovers the order must be Confirmed
// and either party may record it. viaTransit distinguishes the two.
//
// The caller creates the HandoverEvent (with its evidence and confirmation
// deadline) in the same transaction.
func (o *Order) MarkDelivered(by kernel.Role, viaTransit bool, now time.Time) error {
	if viaTransit {
		if err := requireRole(by, kernel.RoleSupplier); err != nil {
			return err
		}
		if o.status != InTransit {
			return errs.NewConflictErrorWithCause("delivery handover requires transit",
				fmt.Errorf("order is %s, not %s", o.status.String(), InTransit.String()))
		}
	} else {
		if err := requireRole(by, kernel.RoleBuyer, kernel.RoleSupplier); err != nil {
			return err
		}
		if o.status != Confirmed {
			return errs.NewConflictErrorWithCause("rental handover requires a confirmed order",
				fmt.Errorf("order is %s, not %s", o.status.String(), Confirmed.String()))
		}
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// ConfirmDelivery completes the order on explicit buyer confirmation.
func (o *Order) ConfirmDelivery(by kernel.Role, now time.Time) error {
	if err := requireRole(by, kernel.RoleBuyer); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// ReportIssue moves the order into the dispute route. Buyer only.
func (o *Order) ReportIssue(by kernel.Role, now time.Time) error {
	if err := requireRole(by, kernel.RoleBuyer); err != nil {
		return err
	}

	newStatus, err := o.status.Dispute()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// AutoComplete completes the order when the confirmation deadline expired
// without buyer action. This is a system transition with no acting party.
func (o *Order) AutoComplete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// Cancel cancels the order. Either party may cancel while the order is
// Pending or Confirmed; once any handover evidence exists cancellation is
// refused regardless of status, because physical evidence makes silent
// cancellation unsafe.
func (o *Order) Cancel(by kernel.Role, hasHandover bool, now time.Time) error {
	if err := requireRole(by, kernel.RoleBuyer, kernel.RoleSupplier); err != nil {
		return err
	}
	if hasHandover {
		return errs.NewConflictError("order has a recorded handover and can only be disputed")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// requireRole rejects acting roles outside the allowed set for a transition.
func requireRole(by kernel.Role, allowed ...kernel.Role) error {
	if err := by.Validate(); err != nil {
		return err
	}
	for _, role := range allowed {
		if by == role {
			return nil
		}
	}
	return errs.NewNotAuthorizedError(
		fmt.Sprintf("%s is not allowed to perform this operation", by.String()))
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now.UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setParties(buyerID, supplierID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	if err := supplierID.Validate(); err != nil {
		return err
	}
	if buyerID.IsEqual(supplierID) {
		return errs.NewValueIsInvalidErrorWithCause("parties",
			errors.New("buyer and supplier must be different parties"))
	}

	o.buyerID = buyerID
	o.supplierID = supplierID
	return nil
}

func (o *Order) setLines(lines []LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	o.lines = make([]LineItem, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setTotalAmount(totalAmount int64) error {
	if totalAmount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("%d is not greater than 0", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setFulfillment(mode DeliveryMode, destination *Destination) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	if mode == ModeDelivery && destination == nil {
		return errs.NewValueIsRequiredError("destination for delivery orders")
	}
	if mode == ModePickup && destination != nil {
		return errs.NewValueIsInvalidErrorWithCause("destination",
			errors.New("pickup orders must not carry a destination"))
	}

	o.mode = mode
	o.destination = destination
	return nil
}
