package order_test

import (
	"fmt"
	"sync"
	"testing"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Pending, order.Processing, order.Shipped, order.Delivered, order.Cancelled,
}

var adjacency = map[order.Status][]order.Status{
	order.Pending:    {order.Processing, order.Cancelled},
	order.Processing: {order.Shipped, order.Cancelled},
	order.Shipped:    {order.Delivered, order.Cancelled},
	order.Delivered:  {order.Cancelled},
	order.Cancelled:  {},
}

func TestStatusMachine_AllowedTransitions(t *testing.T) {
	m := order.DefaultStatusMachine()

	for _, current := range allStatuses {
		t.Run(fmt.Sprintf("from %s", current), func(t *testing.T) {
			allowed, err := m.AllowedTransitions(current)

			require.NoError(t, err)
			assert.Equal(t, adjacency[current], allowed)
		})
	}

	t.Run("should be idempotent", func(t *testing.T) {
		first, err := m.AllowedTransitions(order.Shipped)
		require.NoError(t, err)
		second, err := m.AllowedTransitions(order.Shipped)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("should not expose the table", func(t *testing.T) {
		allowed, err := m.AllowedTransitions(order.Pending)
		require.NoError(t, err)
		allowed[0] = order.Delivered

		again, err := m.AllowedTransitions(order.Pending)
		require.NoError(t, err)
		assert.Equal(t, []order.Status{order.Processing, order.Cancelled}, again)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := m.AllowedTransitions("lost")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatusMachine_ValidateTransition_AllPairs(t *testing.T) {
	m := order.DefaultStatusMachine()

	for _, current := range allStatuses {
		for _, next := range allStatuses {
			t.Run(fmt.Sprintf("%s to %s", current, next), func(t *testing.T) {
				err := m.ValidateTransition(current, next)

				legal := current != next && contains(adjacency[current], next)
				assert.Equal(t, legal, m.IsValidTransition(current, next))
				if legal {
					require.NoError(t, err)
					return
				}

				var te *order.TransitionError
				require.ErrorAs(t, err, &te)
				require.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, current, te.Current)
				assert.Equal(t, next, te.Requested)

				switch {
				case current == next:
					assert.Equal(t, order.RejectedSameStatus, te.Reason)
				case current == order.Cancelled:
					assert.Equal(t, order.RejectedTerminalStatus, te.Reason)
				default:
					assert.Equal(t, order.RejectedNotAllowed, te.Reason)
				}
			})
		}
	}
}

func TestStatusMachine_ValidateTransition_Messages(t *testing.T) {
	m := order.DefaultStatusMachine()

	tests := []struct {
		name     string
		current  order.Status
		next     order.Status
		reason   order.Rejection
		expected string
	}{
		{
			name:     "same status wins over terminal",
			current:  order.Cancelled,
			next:     order.Cancelled,
			reason:   order.RejectedSameStatus,
			expected: "Order is already in this status",
		},
		{
			name:     "same status",
			current:  order.Pending,
			next:     order.Pending,
			reason:   order.RejectedSameStatus,
			expected: "Order is already in this status",
		},
		{
			name:     "terminal status uses raw value",
			current:  order.Cancelled,
			next:     order.Pending,
			reason:   order.RejectedTerminalStatus,
			expected: "Cannot change status of a cancelled order",
		},
		{
			name:     "delivered is not terminal",
			current:  order.Delivered,
			next:     order.Shipped,
			reason:   order.RejectedNotAllowed,
			expected: "Cannot transition from Delivered to Shipped. Allowed: Cancelled",
		},
		{
			name:     "skipping a step lists labels of the allowed set",
			current:  order.Pending,
			next:     order.Delivered,
			reason:   order.RejectedNotAllowed,
			expected: "Cannot transition from Pending to Delivered. Allowed: Processing, Cancelled",
		},
		{
			name:     "going backwards",
			current:  order.Shipped,
			next:     order.Processing,
			reason:   order.RejectedNotAllowed,
			expected: "Cannot transition from Shipped to Processing. Allowed: Delivered, Cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidateTransition(tt.current, tt.next)

			var te *order.TransitionError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.reason, te.Reason)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestStatusMachine_ValidateTransition_UnknownStatus(t *testing.T) {
	m := order.DefaultStatusMachine()

	t.Run("unknown current is invalid input, not a rejection", func(t *testing.T) {
		err := m.ValidateTransition("archived", order.Cancelled)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.NotErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("unknown next is invalid input, not a rejection", func(t *testing.T) {
		err := m.ValidateTransition(order.Pending, "refunded")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.NotErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("boolean form reports false", func(t *testing.T) {
		assert.False(t, m.IsValidTransition("archived", order.Cancelled))
		assert.False(t, m.IsValidTransition(order.Pending, "refunded"))
	})
}

func TestStatusMachine_IsTerminal(t *testing.T) {
	m := order.DefaultStatusMachine()

	for _, s := range allStatuses {
		t.Run(string(s), func(t *testing.T) {
			terminal, err := m.IsTerminal(s)
			require.NoError(t, err)

			allowed, err := m.AllowedTransitions(s)
			require.NoError(t, err)

			assert.Equal(t, len(allowed) == 0, terminal)
			assert.Equal(t, s == order.Cancelled, terminal)
		})
	}

	t.Run("unknown status is an error, not false", func(t *testing.T) {
		_, err := m.IsTerminal("on_hold")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatusMachine_CanBeCancelled(t *testing.T) {
	m := order.DefaultStatusMachine()

	for _, s := range allStatuses {
		t.Run(string(s), func(t *testing.T) {
			ok, err := m.CanBeCancelled(s)

			require.NoError(t, err)
			assert.Equal(t, s != order.Cancelled, ok)
		})
	}

	_, err := m.CanBeCancelled("")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatusMachine_NextAndPreviousStatus(t *testing.T) {
	m := order.DefaultStatusMachine()

	tests := []struct {
		current     order.Status
		next        order.Status
		hasNext     bool
		previous    order.Status
		hasPrevious bool
	}{
		{order.Pending, order.Processing, true, "", false},
		{order.Processing, order.Shipped, true, order.Pending, true},
		{order.Shipped, order.Delivered, true, order.Processing, true},
		{order.Delivered, "", false, order.Shipped, true},
		{order.Cancelled, "", false, "", false},
		{"unknown", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			next, ok := m.NextStatus(tt.current)
			assert.Equal(t, tt.hasNext, ok)
			assert.Equal(t, tt.next, next)

			previous, ok := m.PreviousStatus(tt.current)
			assert.Equal(t, tt.hasPrevious, ok)
			assert.Equal(t, tt.previous, previous)
		})
	}
}

func TestStatusMachine_StatusPath(t *testing.T) {
	m := order.DefaultStatusMachine()

	assert.Equal(t, []order.Status{order.Cancelled}, m.StatusPath(order.Cancelled))
	assert.Equal(t, []order.Status{order.Pending}, m.StatusPath(order.Pending))
	assert.Equal(t, []order.Status{order.Pending, order.Processing, order.Shipped}, m.StatusPath(order.Shipped))
	assert.Equal(t,
		[]order.Status{order.Pending, order.Processing, order.Shipped, order.Delivered},
		m.StatusPath(order.Delivered))
	assert.Empty(t, m.StatusPath("unknown"))
}

func TestStatusMachine_Metadata(t *testing.T) {
	m := order.DefaultStatusMachine()

	md, err := m.Metadata(order.Pending)
	require.NoError(t, err)
	assert.Equal(t, order.Metadata{
		Label:       "Pending",
		Color:       order.ColorWarning,
		Description: "Order received, awaiting processing",
	}, md)

	md, err = m.Metadata(order.Cancelled)
	require.NoError(t, err)
	assert.Equal(t, order.ColorDanger, md.Color)

	_, err = m.Metadata("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, allStatuses, m.Statuses())
}

func TestNewStatusMachine(t *testing.T) {
	fullMetadata := map[order.Status]order.Metadata{}
	for _, s := range allStatuses {
		fullMetadata[s] = order.Metadata{Label: string(s)}
	}
	fullTable := func() []order.Transition {
		table := make([]order.Transition, 0, len(allStatuses))
		for _, s := range allStatuses {
			table = append(table, order.Transition{From: s, To: adjacency[s]})
		}
		return table
	}

	t.Run("accepts a complete table", func(t *testing.T) {
		m, err := order.NewStatusMachine(fullTable(), []order.Status{order.Pending}, fullMetadata)

		require.NoError(t, err)
		assert.True(t, m.IsValidTransition(order.Pending, order.Processing))
	})

	t.Run("rejects a missing row", func(t *testing.T) {
		_, err := order.NewStatusMachine(fullTable()[:4], nil, fullMetadata)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects a duplicate row", func(t *testing.T) {
		table := append(fullTable(), order.Transition{From: order.Pending})
		_, err := order.NewStatusMachine(table, nil, fullMetadata)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unknown target", func(t *testing.T) {
		table := fullTable()
		table[0].To = []order.Status{"teleported"}
		_, err := order.NewStatusMachine(table, nil, fullMetadata)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects missing metadata", func(t *testing.T) {
		_, err := order.NewStatusMachine(fullTable(), nil, map[order.Status]order.Metadata{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestStatusMachine_ConcurrentReads(t *testing.T) {
	m := order.DefaultStatusMachine()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, current := range allStatuses {
				for _, next := range allStatuses {
					_ = m.ValidateTransition(current, next)
				}
				_, _ = m.AllowedTransitions(current)
			}
		}()
	}
	wg.Wait()
}

func contains(list []order.Status, s order.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
