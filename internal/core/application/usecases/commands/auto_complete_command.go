package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// AutoCompleteCommand triggers deadline-driven completion of delivered orders.
// This batch operation scans for open handover events whose confirmation
// deadline has passed and completes each one as if the buyer had confirmed.
//
// Example:
//
//	cmd := NewAutoCompleteCommand()
//	handler := NewAutoCompleteCommandHandler(uowFactory, publisher)
//
//	// Run periodically so expirations are picked up promptly
//	ticker := time.NewTicker(time.Second)
//	for range ticker.C {
//	    if err := handler.Handle(ctx, cmd); err != nil {
//	        log.Printf("Auto-completion sweep failed: %v", err)
//	    }
//	}
type AutoCompleteCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrAutoCompleteCommandIsNotConstructed = errors.New(
		"AutoCompleteCommand must be created via NewAutoCompleteCommand constructor",
	)
)

// NewAutoCompleteCommand creates a command to trigger an auto-completion
// sweep. This is a parameterless command that processes all due events.
func NewAutoCompleteCommand() AutoCompleteCommand {
	command := AutoCompleteCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutoCompleteCommandIsNotConstructed if validation fails.
func (c *AutoCompleteCommand) Validate() error {
	return c.guard.Validate(ErrAutoCompleteCommandIsNotConstructed)
}
