package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
)

// HandoverRepository defines the persistence contract for handover events.
type HandoverRepository interface {
	// Add persists a new handover event.
	Add(ctx context.Context, aggregate *handover.Handover) error

	// Get retrieves a handover event by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*handover.Handover, error)

	// GetOpenByOrder retrieves the open handover event for an order.
	// Returns errs.ErrObjectNotFound when the order has no open event.
	GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*handover.Handover, error)

	// ExistsForOrder reports whether any handover event, open or resolved,
	// was ever recorded for the order. Used to refuse cancellation.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// GetDueOpen retrieves all open handover events whose confirmation
	// deadline is at or before the given instant.
	GetDueOpen(ctx context.Context, now time.Time) ([]*handover.Handover, error)

	// Resolve persists the resolution of a handover event with
	// resolve-if-open semantics: the write is conditioned on the stored
	// resolution still being open, so exactly one of two racing resolvers
	// wins. The loser observes errs.ErrVersionIsInvalid.
	Resolve(ctx context.Context, aggregate *handover.Handover) error
}
