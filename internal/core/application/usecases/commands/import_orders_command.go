package commands

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrImportOrdersCommandIsNotConstructed = errors.New(
	"ImportOrdersCommand must be created via NewImportOrdersCommand constructor",
)

// ImportOrdersCommand stores a batch of ready-made orders, e.g. the generated
// demo dataset.
type ImportOrdersCommand struct {
	orders []*order.Order

	guard guard.ConstructorGuard
}

// NewImportOrdersCommand checks that every order was properly constructed and
// that ids are unique within the batch.
func NewImportOrdersCommand(orders []*order.Order) (ImportOrdersCommand, error) {
	if len(orders) == 0 {
		return ImportOrdersCommand{}, errs.NewValueIsRequiredError("orders")
	}

	seen := make(map[string]struct{}, len(orders))
	for i, o := range orders {
		if err := o.Validate(); err != nil {
			return ImportOrdersCommand{}, fmt.Errorf("orders[%d]: %w", i, err)
		}
		if _, dup := seen[o.ID()]; dup {
			return ImportOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("orders",
				fmt.Errorf("order %s appears twice", o.ID()))
		}
		seen[o.ID()] = struct{}{}
	}

	return ImportOrdersCommand{
		orders: append([]*order.Order(nil), orders...),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportOrdersCommandIsNotConstructed)
}

// Orders returns the batch.
func (c ImportOrdersCommand) Orders() []*order.Order {
	return c.orders
}
