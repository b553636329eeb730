package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventType identifies the state transition a notification reports.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventWindowProposed     EventType = "order.window_proposed"
	EventWindowAccepted     EventType = "order.window_accepted"
	EventWindowCountered    EventType = "order.window_countered"
	EventTransitStarted     EventType = "order.transit_started"
	EventHandoverRecorded   EventType = "order.handover_recorded"
	EventOrderCompleted     EventType = "order.completed"
	EventOrderAutoCompleted EventType = "order.auto_completed"
	EventIssueReported      EventType = "order.issue_reported"
	EventOrderCancelled     EventType = "order.cancelled"
)

// Notifier is the outbound notification trigger. It is fire-and-forget:
// implementations deliver best-effort and a delivery failure never rolls back
// the state transition that produced the event. Callers log and suppress the
// returned error.
type Notifier interface {
	Notify(ctx context.Context, event EventType, orderID, recipientID kernel.UUID, payload map[string]any) error
}
