package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
)

// GetOrderQueryHandler builds the order detail view.
type GetOrderQueryHandler struct {
	reader  OrderReader
	totals  services.TotalsCalculator
	machine *order.StatusMachine
}

// NewGetOrderQueryHandler creates the handler.
func NewGetOrderQueryHandler(
	reader OrderReader,
	totals services.TotalsCalculator,
	machine *order.StatusMachine,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader, totals: totals, machine: machine}
}

// Handle runs the query. A missing order yields errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return h.Describe(o)
}

// Describe builds the detail view of an order the caller already holds.
func (h GetOrderQueryHandler) Describe(o *order.Order) (GetOrderQueryResponse, error) {
	totals, err := h.totals.OrderTotals(services.LineItems(o.Items()))
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	allowed, err := h.machine.AllowedTransitions(o.Status())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	terminal, err := h.machine.IsTerminal(o.Status())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	cancellable, err := h.machine.CanBeCancelled(o.Status())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		Order:              o,
		Totals:             totals,
		AllowedTransitions: allowed,
		IsTerminal:         terminal,
		CanBeCancelled:     cancellable,
		StatusPath:         h.machine.StatusPath(o.Status()),
	}
	if next, ok := h.machine.NextStatus(o.Status()); ok {
		resp.NextStatus = &next
	}

	return resp, nil
}
