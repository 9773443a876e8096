package commands_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, ids []string) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, criteria ports.OrderCriteria) ([]*order.Order, error) {
	args := m.Called(ctx, criteria)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMetricsInvalidator struct{ mock.Mock }

func (m *MockMetricsInvalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 4, 2, 15, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newOrder(t *testing.T, id string, status order.Status) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("CUST-0001", "Jane Smith", "jane.smith@example.com")
	require.NoError(t, err)
	item, err := order.NewItem(id+"-1", "Laptop Stand", 1, 4999)
	require.NoError(t, err)

	created := fixedNow.Add(-48 * time.Hour)
	history := []order.StatusChange{{Status: order.Pending, Timestamp: created, UpdatedBy: order.SystemActor}}
	if status != order.Pending {
		history = append([]order.StatusChange{{Status: status, Timestamp: created.Add(time.Hour), UpdatedBy: "User 2"}}, history...)
	}

	o, err := order.RestoreOrder(id, customer, created, status, []order.Item{item}, history)
	require.NoError(t, err)
	return o
}
