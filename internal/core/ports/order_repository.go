// Package ports defines the contracts between the order desk core and its
// infrastructure. Adapters under internal/adapters/out implement them.
package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/order"
)

// OrderCriteria narrows a Find call. Zero fields do not filter.
type OrderCriteria struct {
	// Status keeps only orders in this status.
	Status *order.Status

	// Search is a case-insensitive substring matched against the order id,
	// the customer name and the customer email.
	Search string

	// DateFrom and DateTo bound the order date, both inclusive.
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Every multi-order result is ordered by order date descending, then by id
// descending. Cursor pagination relies on this order.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status and history of an existing order.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id string) (*order.Order, error)

	// GetMany retrieves the orders with the given ids. Unknown ids are
	// skipped; callers compare lengths to detect them.
	GetMany(ctx context.Context, ids []string) ([]*order.Order, error)

	// Find returns every order matching criteria.
	Find(ctx context.Context, criteria OrderCriteria) ([]*order.Order, error)

	// Count returns the number of stored orders.
	Count(ctx context.Context) (int64, error)
}
