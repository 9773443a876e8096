package order_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("accepts zero price", func(t *testing.T) {
		item, err := order.NewItem("ITEM-1", "Free Sticker", 1, 0)

		require.NoError(t, err)
		assert.Equal(t, "ITEM-1", item.ID())
		assert.Equal(t, "Free Sticker", item.ProductName())
		assert.Equal(t, 1, item.Quantity())
		assert.Zero(t, item.UnitPrice())
	})

	tests := []struct {
		name     string
		id       string
		product  string
		quantity int
		price    int64
		sentinel error
	}{
		{"missing id", "", "Monitor", 1, 29999, errs.ErrValueIsRequired},
		{"missing product", "ITEM-1", " ", 1, 29999, errs.ErrValueIsRequired},
		{"zero quantity", "ITEM-1", "Monitor", 0, 29999, errs.ErrValueIsInvalid},
		{"negative quantity", "ITEM-1", "Monitor", -2, 29999, errs.ErrValueIsInvalid},
		{"negative price", "ITEM-1", "Monitor", 1, -1, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := order.NewItem(tt.id, tt.product, tt.quantity, kernel.Cents(tt.price))
			require.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestNewCustomer(t *testing.T) {
	c, err := order.NewCustomer("CUST-0042", "Maria Garcia", "maria.garcia@demo.com")
	require.NoError(t, err)
	assert.Equal(t, "CUST-0042", c.ID())
	assert.Equal(t, "Maria Garcia", c.Name())
	assert.Equal(t, "maria.garcia@demo.com", c.Email())

	_, err = order.NewCustomer("CUST-0042", "Maria Garcia", "not-an-email")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewCustomer("", "Maria Garcia", "maria.garcia@demo.com")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
