// Package queries contains read-only operations over orders.
// Each query is a validated value object paired with a handler.
package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id string) (*order.Order, error)
	Find(ctx context.Context, criteria ports.OrderCriteria) ([]*order.Order, error)
}
