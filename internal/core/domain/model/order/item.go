package order

import (
	"fmt"
	"strings"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// Item is one order line. It is an immutable value object.
type Item struct {
	id          string
	productName string
	quantity    int
	unitPrice   kernel.Cents
}

// NewItem validates and creates an order line. Quantity must be positive and
// the unit price must not be negative.
func NewItem(id, productName string, quantity int, unitPrice kernel.Cents) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, errs.NewValueIsRequiredError("item id")
	}
	if strings.TrimSpace(productName) == "" {
		return Item{}, errs.NewValueIsRequiredError("product name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := unitPrice.Validate("unit price"); err != nil {
		return Item{}, err
	}

	return Item{
		id:          id,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}, nil
}

func (i Item) ID() string              { return i.id }
func (i Item) ProductName() string     { return i.productName }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() kernel.Cents { return i.unitPrice }
