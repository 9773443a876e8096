package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/pricing"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) Find(ctx context.Context, criteria ports.OrderCriteria) ([]*order.Order, error) {
	args := m.Called(ctx, criteria)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockMetricsCache struct{ mock.Mock }

func (m *MockMetricsCache) Get(ctx context.Context) (services.Metrics, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.Metrics), args.Bool(1), args.Error(2)
}

func (m *MockMetricsCache) Set(ctx context.Context, metrics services.Metrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

func (m *MockMetricsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var baseDate = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

func newCalculator(t *testing.T) services.TotalsCalculator {
	t.Helper()
	calc, err := services.NewTotalsCalculator(pricing.DefaultRules())
	require.NoError(t, err)
	return calc
}

// newOrder builds an order placed days after baseDate with a single line.
func newOrder(t *testing.T, n int, days int, status order.Status, price kernel.Cents) *order.Order {
	t.Helper()
	id := fmt.Sprintf("ORD-%04d", n)
	customer, err := order.NewCustomer(fmt.Sprintf("CUST-%04d", n), "Jane Smith", "jane.smith@example.com")
	require.NoError(t, err)
	item, err := order.NewItem(id+"-1", "Desk Lamp", 1, price)
	require.NoError(t, err)

	placed := baseDate.AddDate(0, 0, days)
	history := []order.StatusChange{{Status: order.Pending, Timestamp: placed, UpdatedBy: order.SystemActor}}
	if status != order.Pending {
		history = append([]order.StatusChange{{Status: status, Timestamp: placed.Add(time.Hour), UpdatedBy: "User 1"}}, history...)
	}

	o, err := order.RestoreOrder(id, customer, placed, status, []order.Item{item}, history)
	require.NoError(t, err)
	return o
}

// dataset returns n pending orders, one per day, in storage order.
func dataset(t *testing.T, n int) []*order.Order {
	t.Helper()
	orders := make([]*order.Order, 0, n)
	for i := n; i >= 1; i-- {
		orders = append(orders, newOrder(t, i, i, order.Pending, kernel.Cents(i*1000)))
	}
	return orders
}
