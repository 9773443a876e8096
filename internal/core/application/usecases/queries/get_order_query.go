package queries

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/pricing"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order with everything the detail page shows.
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for orderID.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() string { return q.orderID }

// GetOrderQueryResponse is the order detail view.
//
// AllowedTransitions drives the status buttons; when IsTerminal is true the
// UI shows a terminal message instead. StatusPath is the progress line
// leading to the current status.
type GetOrderQueryResponse struct {
	Order              *order.Order
	Totals             pricing.Totals
	AllowedTransitions []order.Status
	IsTerminal         bool
	CanBeCancelled     bool
	StatusPath         []order.Status
	NextStatus         *order.Status
}
