package handover

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrHandoverIsNotConstructed is returned when a Handover instance was not
	// created through NewHandover or RestoreHandover.
	ErrHandoverIsNotConstructed = errors.New("Handover must be created via NewHandover or RestoreHandover")
)

// QuantityRecord captures what was physically transferred: the delivered
// quantity for goods, the equipment condition for rentals. Which fields are
// mandatory depends on the handover kind.
type QuantityRecord struct {
	quantity  float64
	unit      string
	condition string
}

// NewQuantityRecord creates a QuantityRecord validated against the handover
// kind: deliveries require a positive quantity with a unit, rental handovers
// require a condition note.
func NewQuantityRecord(kind Kind, quantity float64, unit, condition string) (QuantityRecord, error) {
	if err := kind.Validate(); err != nil {
		return QuantityRecord{}, err
	}

	switch kind {
	case KindDelivery:
		if quantity <= 0 {
			return QuantityRecord{}, errs.NewValueIsInvalidErrorWithCause("handover quantity",
				fmt.Errorf("%v is not greater than 0", quantity))
		}
		if unit == "" {
			return QuantityRecord{}, errs.NewValueIsRequiredError("handover quantity unit")
		}
	case KindRentalHandover:
		if condition == "" {
			return QuantityRecord{}, errs.NewValueIsRequiredError("equipment condition")
		}
	}

	return QuantityRecord{quantity: quantity, unit: unit, condition: condition}, nil
}

// Quantity returns the transferred quantity (0 for rental handovers).
func (q QuantityRecord) Quantity() float64 {
	return q.quantity
}

// Unit returns the unit of the transferred quantity.
func (q QuantityRecord) Unit() string {
	return q.unit
}

// Condition returns the recorded equipment condition.
func (q QuantityRecord) Condition() string {
	return q.condition
}

// Handover is the record of one physical transfer attempt on an order.
// It is created once per attempt and resolved exactly once.
//
// Invariants:
//   - At least one photo reference (enforced at construction)
//   - The confirmation deadline equals occurrence time plus the kind TTL
//   - Resolution transitions only from Open, and only once
type Handover struct {
	id      kernel.UUID
	orderID kernel.UUID
	kind    Kind

	occurredAt time.Time
	photoRefs  []string
	record     QuantityRecord
	notes      string

	confirmationDeadline time.Time
	resolution           Resolution
	resolvedAt           *time.Time

	isConstructed bool
}

// NewHandover creates an open Handover for the given order. The confirmation
// deadline is derived from the occurrence time and the kind, so it survives
// process restarts as plain persisted data.
func NewHandover(
	id kernel.UUID,
	orderID kernel.UUID,
	kind Kind,
	photoRefs []string,
	record QuantityRecord,
	notes string,
	occurredAt time.Time,
) (*Handover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if len(photoRefs) == 0 {
		return nil, errs.NewValueIsRequiredError("at least one photo reference")
	}
	for _, ref := range photoRefs {
		if ref == "" {
			return nil, errs.NewValueIsInvalidError("photo reference")
		}
	}

	occurredAt = occurredAt.UTC()
	refs := make([]string, len(photoRefs))
	copy(refs, photoRefs)

	return &Handover{
		id:                   id,
		orderID:              orderID,
		kind:                 kind,
		occurredAt:           occurredAt,
		photoRefs:            refs,
		record:               record,
		notes:                notes,
		confirmationDeadline: occurredAt.Add(kind.ConfirmationTTL()),
		resolution:           ResolutionOpen,
		isConstructed:        true,
	}, nil
}

// RestoreHandover reconstructs a Handover from persistence.
func RestoreHandover(
	id kernel.UUID,
	orderID kernel.UUID,
	kind Kind,
	photoRefs []string,
	record QuantityRecord,
	notes string,
	occurredAt time.Time,
	confirmationDeadline time.Time,
	resolution Resolution,
	resolvedAt *time.Time,
) (*Handover, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), kind.Validate(), resolution.Validate()); err != nil {
		return nil, err
	}
	if len(photoRefs) == 0 {
		return nil, errs.NewValueIsRequiredError("at least one photo reference")
	}

	return &Handover{
		id:                   id,
		orderID:              orderID,
		kind:                 kind,
		occurredAt:           occurredAt,
		photoRefs:            photoRefs,
		record:               record,
		notes:                notes,
		confirmationDeadline: confirmationDeadline,
		resolution:           resolution,
		resolvedAt:           resolvedAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Handover instance was properly constructed.
func (h *Handover) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHandoverIsNotConstructed
	}
	return nil
}

// ID returns the handover event identifier.
func (h *Handover) ID() kernel.UUID {
	return h.id
}

// OrderID returns the identifier of the order this handover belongs to.
func (h *Handover) OrderID() kernel.UUID {
	return h.orderID
}

// Kind returns the handover kind.
func (h *Handover) Kind() Kind {
	return h.kind
}

// OccurredAt returns when the physical transfer happened.
func (h *Handover) OccurredAt() time.Time {
	return h.occurredAt
}

// PhotoRefs returns the opaque photo evidence references. The returned slice
// is a copy.
func (h *Handover) PhotoRefs() []string {
	refs := make([]string, len(h.photoRefs))
	copy(refs, h.photoRefs)
	return refs
}

// Record returns the quantity/condition record.
func (h *Handover) Record() QuantityRecord {
	return h.record
}

// Notes returns the free-text notes attached at handover time.
func (h *Handover) Notes() string {
	return h.notes
}

// ConfirmationDeadline returns the instant after which the handover
// auto-resolves without buyer action.
func (h *Handover) ConfirmationDeadline() time.Time {
	return h.confirmationDeadline
}

// Resolution returns the current resolution state.
func (h *Handover) Resolution() Resolution {
	return h.resolution
}

// ResolvedAt returns when the handover was resolved, or nil while open.
func (h *Handover) ResolvedAt() *time.Time {
	return h.resolvedAt
}

// IsOpen reports whether the handover has not been resolved yet.
func (h *Handover) IsOpen() bool {
	return h.resolution == ResolutionOpen
}

// Confirm resolves the handover as confirmed by the buyer. Legal only while
// open and strictly before the confirmation deadline; a confirmation arriving
// after the deadline is a conflict, since the auto-complete path owns the
// event from that point.
func (h *Handover) Confirm(now time.Time) error {
	if err := h.resolvable(); err != nil {
		return err
	}
	if !now.Before(h.confirmationDeadline) {
		return errs.NewConflictError("confirmation window has closed")
	}

	h.resolve(ResolutionConfirmed, now)
	return nil
}

// Dispute resolves the handover as disputed. Same legality window as Confirm.
func (h *Handover) Dispute(now time.Time) error {
	if err := h.resolvable(); err != nil {
		return err
	}
	if !now.Before(h.confirmationDeadline) {
		return errs.NewConflictError("confirmation window has closed")
	}

	h.resolve(ResolutionDisputed, now)
	return nil
}

// AutoComplete resolves the handover as auto-completed. Legal only while open
// and once the deadline has passed.
func (h *Handover) AutoComplete(now time.Time) error {
	if err := h.resolvable(); err != nil {
		return err
	}
	if now.Before(h.confirmationDeadline) {
		return errs.NewConflictError("confirmation deadline has not passed")
	}

	h.resolve(ResolutionAutoCompleted, now)
	return nil
}

func (h *Handover) resolvable() error {
	if h.resolution != ResolutionOpen {
		return errs.NewConflictErrorWithCause("handover already resolved",
			fmt.Errorf("resolution is %s", h.resolution.String()))
	}
	return nil
}

func (h *Handover) resolve(r Resolution, now time.Time) {
	resolvedAt := now.UTC()
	h.resolution = r
	h.resolvedAt = &resolvedAt
}
