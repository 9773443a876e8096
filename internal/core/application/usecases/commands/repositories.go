// Package commands contains business operations that modify order state.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// MetricsInvalidator drops cached dashboard metrics after a write.
	MetricsInvalidator interface {
		Invalidate(ctx context.Context) error
	}

	// Clock returns the current time. Handlers stamp history entries with it.
	Clock func() time.Time
)

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) error { return nil }

func orDefaults(clock Clock, invalidator MetricsInvalidator) (Clock, MetricsInvalidator) {
	if clock == nil {
		clock = time.Now
	}
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return clock, invalidator
}
