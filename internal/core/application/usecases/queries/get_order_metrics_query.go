package queries

import (
	"errors"

	"orderdesk/internal/pkg/guard"
)

var ErrGetOrderMetricsQueryIsNotConstructed = errors.New(
	"GetOrderMetricsQuery must be created via NewGetOrderMetricsQuery constructor",
)

// GetOrderMetricsQuery computes the dashboard headline figures over all
// orders.
type GetOrderMetricsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderMetricsQuery creates the query. It has no parameters.
func NewGetOrderMetricsQuery() GetOrderMetricsQuery {
	return GetOrderMetricsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderMetricsQueryIsNotConstructed)
}
