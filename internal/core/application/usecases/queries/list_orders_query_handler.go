package queries

import (
	"context"
	"slices"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/pricing"
	"orderdesk/internal/core/domain/services"
)

// OrderSummary is an order together with its computed totals.
type OrderSummary struct {
	Order  *order.Order
	Totals pricing.Totals
}

// ListOrdersQueryResponse is one page of orders.
type ListOrdersQueryResponse struct {
	Data     []OrderSummary
	PageInfo PageInfo
	Cursors  Cursors
}

// ListOrdersQueryHandler filters, values and paginates orders.
//
// Status, search and date filters are pushed down to the reader. Amount
// filters compare against the subtotal computed by the TotalsCalculator, so
// they are applied after loading.
type ListOrdersQueryHandler struct {
	reader OrderReader
	totals services.TotalsCalculator
}

// NewListOrdersQueryHandler creates the handler.
func NewListOrdersQueryHandler(reader OrderReader, totals services.TotalsCalculator) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader, totals: totals}
}

// Handle runs the query.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	orders, err := h.reader.Find(ctx, query.Criteria())
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		totals, totalsErr := h.totals.OrderTotals(services.LineItems(o.Items()))
		if totalsErr != nil {
			return ListOrdersQueryResponse{}, totalsErr
		}
		if !query.matchesAmount(totals.Subtotal) {
			continue
		}
		summaries = append(summaries, OrderSummary{Order: o, Totals: totals})
	}

	key := func(s OrderSummary) Cursor { return CursorOf(s.Order) }
	slices.SortStableFunc(summaries, func(a, b OrderSummary) int {
		return compareListOrder(key(a), key(b))
	})

	page, info, cursors := paginate(summaries, key, query.Page())

	return ListOrdersQueryResponse{
		Data:     page,
		PageInfo: info,
		Cursors:  cursors,
	}, nil
}
