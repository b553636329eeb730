package kernel

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrWindowIsNotConstructed indicates that a Window was not created through
// NewWindow. Returned when validating a zero-value Window.
var ErrWindowIsNotConstructed = errs.NewValueIsRequiredError("Window must be created via NewWindow")

// Window is a value object representing a start/end time range for a delivery
// or pickup. It is used both for in-flight proposals and for the promised
// window agreed by both parties.
//
// Invariant: start is strictly before end. Whether the window lies in the
// future is a business rule of the proposing operation, checked separately
// with NotBefore, because a promised window restored from persistence may
// legitimately lie in the past.
type Window struct {
	start time.Time
	end   time.Time
}

// NewWindow creates a Window after validating that start is strictly before
// end. Both instants are stored in UTC.
func NewWindow(start, end time.Time) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, errs.NewValueIsRequiredError("window start and end")
	}
	if !start.Before(end) {
		return Window{}, errs.NewValueIsInvalidErrorWithCause("window",
			fmt.Errorf("start %s is not before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}

	return Window{start: start.UTC(), end: end.UTC()}, nil
}

// Start returns the inclusive beginning of the window.
func (w Window) Start() time.Time {
	return w.start
}

// End returns the exclusive end of the window.
func (w Window) End() time.Time {
	return w.end
}

// NotBefore checks that the window does not begin in the past relative to the
// supplied instant. Used when a party proposes a new window.
func (w Window) NotBefore(now time.Time) error {
	if w.start.Before(now) {
		return errs.NewValueIsInvalidErrorWithCause("window",
			fmt.Errorf("start %s is in the past", w.start.Format(time.RFC3339)))
	}
	return nil
}

// IsEqual compares two windows by their instants.
func (w Window) IsEqual(other Window) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// Validate checks if the Window is properly constructed.
func (w Window) Validate() error {
	if w.start.IsZero() || w.end.IsZero() {
		return ErrWindowIsNotConstructed
	}
	return nil
}
