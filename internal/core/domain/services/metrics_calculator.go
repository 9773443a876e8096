package services

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// DefaultAttentionAge is how long an order may stay pending before the
// dashboard flags it.
const DefaultAttentionAge = 24 * time.Hour

// Metrics are the dashboard headline figures.
type Metrics struct {
	TotalOrders        int
	TotalRevenue       kernel.Cents
	AverageOrderValue  kernel.Cents
	OrdersByStatus     map[order.Status]int
	RequiringAttention int
}

// MetricsCalculator aggregates Metrics over a set of orders.
type MetricsCalculator struct {
	totals       TotalsCalculator
	attentionAge time.Duration
}

// NewMetricsCalculator creates a calculator that values orders with totals.
func NewMetricsCalculator(totals TotalsCalculator, attentionAge time.Duration) MetricsCalculator {
	if attentionAge <= 0 {
		attentionAge = DefaultAttentionAge
	}
	return MetricsCalculator{totals: totals, attentionAge: attentionAge}
}

// Calculate computes the metrics as of now.
//
// Revenue counts the final totals of delivered orders only. The average order
// value covers every order and is rounded to a whole cent. An order requires
// attention when it is pending and was created more than attentionAge ago.
func (m MetricsCalculator) Calculate(orders []*order.Order, now time.Time) (Metrics, error) {
	metrics := Metrics{
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[order.Status]int, 5),
	}

	var sum kernel.Cents
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Metrics{}, err
		}

		totals, err := m.totals.OrderTotals(LineItems(o.Items()))
		if err != nil {
			return Metrics{}, err
		}

		sum += totals.FinalTotal
		if o.Status() == order.Delivered {
			metrics.TotalRevenue += totals.FinalTotal
		}
		metrics.OrdersByStatus[o.Status()]++

		if o.Status() == order.Pending && now.Sub(CreatedAt(o)) > m.attentionAge {
			metrics.RequiringAttention++
		}
	}

	if len(orders) > 0 {
		metrics.AverageOrderValue = kernel.Cents(
			decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(orders)))).Round(0).IntPart())
	}

	return metrics, nil
}

// CreatedAt returns the timestamp of the oldest history entry, falling back
// to the order date for orders restored without history.
func CreatedAt(o *order.Order) time.Time {
	history := o.History()
	if len(history) == 0 {
		return o.OrderDate()
	}
	return history[len(history)-1].Timestamp
}
