package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AutoCompleteCommandHandler orchestrates deadline-driven order completion.
// The confirmation deadline lives in the database next to the handover event,
// so the sweep re-derives due timers from persisted state on every run and
// needs no in-memory timer state to survive restarts.
//
// Each due event is processed in its own transaction: one stuck order must
// not block the rest of the sweep, and a buyer confirming concurrently simply
// wins the resolve-if-open race for that one event.
type AutoCompleteCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
}

// NewAutoCompleteCommandHandler creates a handler for auto-completion sweeps.
func NewAutoCompleteCommandHandler(uowFactory UoWFactory, publisher EventPublisher) AutoCompleteCommandHandler {
	return AutoCompleteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes one auto-completion sweep.
// Collects the identifiers of all due open handover events, then completes
// each in an isolated transaction. Losing a race to a concurrent buyer action
// is expected and not an error; any other failure is joined into the returned
// error after the whole sweep ran.
func (h *AutoCompleteCommandHandler) Handle(ctx context.Context, cmd AutoCompleteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	dueIDs, err := h.collectDue(ctx, now)
	if err != nil {
		return err
	}

	var sweepErr error
	for _, handoverID := range dueIDs {
		if err = h.completeOne(ctx, handoverID, now); err != nil {
			if isLostRace(err) {
				continue
			}
			sweepErr = errors.Join(sweepErr, err)
		}
	}

	return sweepErr
}

// collectDue reads the due open events in a short read-only transaction and
// returns their identifiers. The events themselves are re-read inside each
// completion transaction so the sweep never acts on stale state.
func (h *AutoCompleteCommandHandler) collectDue(ctx context.Context, now time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dueEvents, err := uow.HandoverRepository().GetDueOpen(ctx, now)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(dueEvents))
	for _, event := range dueEvents {
		ids = append(ids, event.ID())
	}

	return ids, nil
}

// completeOne auto-completes a single due handover event and its order.
func (h *AutoCompleteCommandHandler) completeOne(ctx context.Context, handoverID kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	handoverRepo := uow.HandoverRepository()
	handoverEvent, err := handoverRepo.Get(ctx, handoverID)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, handoverEvent.OrderID())
	if err != nil {
		return err
	}

	if err = handoverEvent.AutoComplete(now); err != nil {
		return err
	}
	if err = orderAggregate.AutoComplete(now); err != nil {
		return err
	}

	if err = handoverRepo.Resolve(ctx, handoverEvent); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := statusPayload(orderAggregate)
	payload["resolution"] = handover.ResolutionAutoCompleted.String()
	h.publisher.Publish(ctx, ports.EventOrderAutoCompleted, orderAggregate.ID(),
		orderAggregate.BuyerID(), payload)

	return nil
}

// isLostRace reports whether a completion failure means a concurrent actor
// resolved the event first. A buyer confirmation or dispute between the
// collection read and the completion transaction shows up as a conflict on
// the aggregates or as a failed conditional write.
func isLostRace(err error) bool {
	return errors.Is(err, errs.ErrVersionIsInvalid) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrObjectNotFound)
}
