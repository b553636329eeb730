package handover

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Resolution is the outcome state of a handover event. An event starts Open
// and is resolved exactly once; Confirmed, Disputed and AutoCompleted are
// terminal.
type Resolution int

const (
	// ResolutionUnknown represents an invalid or undefined resolution.
	ResolutionUnknown Resolution = iota

	// ResolutionOpen means the confirmation window is running and the buyer
	// has not yet responded.
	ResolutionOpen

	// ResolutionConfirmed means the buyer confirmed the handover in time.
	ResolutionConfirmed

	// ResolutionDisputed means the buyer reported an issue in time.
	ResolutionDisputed

	// ResolutionAutoCompleted means the deadline expired without buyer action
	// and the scheduler resolved the event.
	ResolutionAutoCompleted
)

// getResolutionStrings returns the wire names of all resolutions.
func getResolutionStrings() map[Resolution]string {
	return map[Resolution]string{
		ResolutionUnknown:       "unknown",
		ResolutionOpen:          "open",
		ResolutionConfirmed:     "confirmed",
		ResolutionDisputed:      "disputed",
		ResolutionAutoCompleted: "auto_completed",
	}
}

// ResolutionFromString parses a resolution from its wire name.
func ResolutionFromString(s string) (Resolution, error) {
	for resolution, name := range getResolutionStrings() {
		if name == s && resolution != ResolutionUnknown {
			return resolution, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("resolution",
		fmt.Errorf("%q is not a valid resolution", s))
}

// String returns the wire name of the resolution.
func (r Resolution) String() string {
	if s, ok := getResolutionStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// IsTerminal reports whether the resolution is final.
func (r Resolution) IsTerminal() bool {
	return r == ResolutionConfirmed || r == ResolutionDisputed || r == ResolutionAutoCompleted
}

// Validate checks if the Resolution is one of the declared values.
func (r Resolution) Validate() error {
	if _, ok := getResolutionStrings()[r]; !ok || r == ResolutionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("resolution",
			fmt.Errorf("%d is not a valid resolution", r))
	}
	return nil
}
