package memory_test

import (
	"fmt"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/memory"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDate = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, n int, name, email string, days int) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer(fmt.Sprintf("CUST-%04d", n), name, email)
	require.NoError(t, err)
	item, err := order.NewItem(fmt.Sprintf("ITEM-%04d", n), "Mechanical Keyboard", 1, 8999)
	require.NoError(t, err)
	day := baseDate.AddDate(0, 0, days)
	o, err := order.NewOrder(fmt.Sprintf("ORD-%04d", n), customer, day, []order.Item{item}, day)
	require.NoError(t, err)
	return o
}

func ids(orders []*order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}

func Test_OrderRepository_AddGetUpdate(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewStore())
	o := newOrder(t, 1, "Jane Smith", "jane@example.com", 0)

	// When
	require.NoError(t, repo.Add(ctx, o))

	// Then
	got, err := repo.Get(ctx, "ORD-0001")
	require.NoError(t, err)
	assert.Equal(t, order.Pending, got.Status())

	// When
	require.NoError(t, got.ChangeStatus(order.DefaultStatusMachine(), order.Processing, "alice", "", time.Now()))
	require.NoError(t, repo.Update(ctx, got))

	// Then
	again, err := repo.Get(ctx, "ORD-0001")
	require.NoError(t, err)
	assert.Equal(t, order.Processing, again.Status())
	assert.Len(t, again.History(), 2)
}

func Test_OrderRepository_Add_Duplicate(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewStore())
	require.NoError(t, repo.Add(ctx, newOrder(t, 1, "Jane Smith", "jane@example.com", 0)))

	err := repo.Add(ctx, newOrder(t, 1, "Jane Smith", "jane@example.com", 0))

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_OrderRepository_Update_RejectsStaleCopy(t *testing.T) {
	ctx := t.Context()
	machine := order.DefaultStatusMachine()
	repo := memory.NewOrderRepository(memory.NewStore())
	require.NoError(t, repo.Add(ctx, newOrder(t, 1, "Jane Smith", "jane@example.com", 0)))

	stale, err := repo.Get(ctx, "ORD-0001")
	require.NoError(t, err)
	fresh, err := repo.Get(ctx, "ORD-0001")
	require.NoError(t, err)

	require.NoError(t, fresh.ChangeStatus(machine, order.Processing, "alice", "", time.Now()))
	require.NoError(t, repo.Update(ctx, fresh))

	require.NoError(t, stale.ChangeStatus(machine, order.Cancelled, "bob", "", time.Now()))
	err = repo.Update(ctx, stale)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	stored, err := repo.Get(ctx, "ORD-0001")
	require.NoError(t, err)
	assert.Equal(t, order.Processing, stored.Status())
}

func Test_OrderRepository_Missing(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewStore())

	_, err := repo.Get(ctx, "ORD-0404")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	err = repo.Update(ctx, newOrder(t, 404, "Jane Smith", "jane@example.com", 0))
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_OrderRepository_ReturnsCopies(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewStore())
	o := newOrder(t, 1, "Jane Smith", "jane@example.com", 0)
	require.NoError(t, repo.Add(ctx, o))

	// When mutating both the added and the loaded aggregate without saving
	require.NoError(t, o.ChangeStatus(order.DefaultStatusMachine(), order.Cancelled, "alice", "", time.Now()))
	got, err := repo.Get(ctx, "ORD-0001")
	require.NoError(t, err)
	require.NoError(t, got.ChangeStatus(order.DefaultStatusMachine(), order.Processing, "bob", "", time.Now()))

	// Then the store is untouched
	stored, err := repo.Get(ctx, "ORD-0001")
	require.NoError(t, err)
	assert.Equal(t, order.Pending, stored.Status())
}

func Test_OrderRepository_Find(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewStore())
	require.NoError(t, repo.Add(ctx, newOrder(t, 1, "Jane Smith", "jane.smith@example.com", 0)))
	require.NoError(t, repo.Add(ctx, newOrder(t, 2, "John Doe", "john.doe@example.com", 5)))
	require.NoError(t, repo.Add(ctx, newOrder(t, 3, "Mary Johnson", "mary@example.com", 5)))
	require.NoError(t, repo.Add(ctx, newOrder(t, 4, "Ann Lee", "ann@example.com", 9)))

	shipped := order.Shipped
	pending := order.Pending
	from := baseDate.AddDate(0, 0, 1)
	to := baseDate.AddDate(0, 0, 5).Add(15 * time.Hour)

	tests := []struct {
		name     string
		criteria ports.OrderCriteria
		expected []string
	}{
		{"all in list order", ports.OrderCriteria{}, []string{"ORD-0004", "ORD-0003", "ORD-0002", "ORD-0001"}},
		{"status without matches", ports.OrderCriteria{Status: &shipped}, []string{}},
		{"status", ports.OrderCriteria{Status: &pending, Search: "ann"}, []string{"ORD-0004"}},
		{"search name case-insensitive", ports.OrderCriteria{Search: "JOHN"}, []string{"ORD-0003", "ORD-0002"}},
		{"search id", ports.OrderCriteria{Search: "ord-0001"}, []string{"ORD-0001"}},
		{"search email", ports.OrderCriteria{Search: "doe@"}, []string{"ORD-0002"}},
		{"date range inclusive by day", ports.OrderCriteria{DateFrom: &from, DateTo: &to}, []string{"ORD-0003", "ORD-0002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Find(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func Test_OrderRepository_GetMany_SkipsUnknownAndDuplicates(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewStore())
	require.NoError(t, repo.Add(ctx, newOrder(t, 1, "Jane Smith", "jane@example.com", 0)))
	require.NoError(t, repo.Add(ctx, newOrder(t, 2, "John Doe", "john@example.com", 3)))

	got, err := repo.GetMany(ctx, []string{"ORD-0001", "ORD-0009", "ORD-0002", "ORD-0001"})

	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-0002", "ORD-0001"}, ids(got))
}

func Test_OrderRepository_Count(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	require.NoError(t, repo.Add(ctx, newOrder(t, 1, "Jane Smith", "jane@example.com", 0)))

	n, err := repo.Count(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())
}
