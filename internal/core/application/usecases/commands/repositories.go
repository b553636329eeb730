// Package commands contains the write-side operations of the fulfillment
// core, one command + handler pair per external operation. All handlers
// follow the same pattern: validate the command, open a unit of work, load
// and mutate the aggregates, commit, then publish a notification event
// (best-effort, after the transition is durable).
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HandoverRepoFactory provides access to the handover repository within a
	// transaction.
	HandoverRepoFactory interface {
		HandoverRepository() ports.HandoverRepository
	}

	// OrderUoW manages transactions for order-only operations
	// (creation and window negotiation).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning the order and its handover events
	// (handover recording, confirmation, disputes, cancellation,
	// auto-completion).
	UoW interface {
		TxManager
		OrderRepoFactory
		HandoverRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
