package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"orderdesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the order desk. It owns the customer snapshot,
// the order lines and the status history, and it only changes status through
// a StatusMachine.
//
// Order follows these invariants:
//   - Must have a non-empty identifier
//   - Must have at least one item
//   - Status is one of the five known statuses
//   - History is ordered newest first and its head matches the current status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id        string
	customer  Customer
	orderDate time.Time
	status    Status
	items     []Item
	history   []StatusChange

	isConstructed bool
}

// NewOrder creates a pending order. The first history entry is recorded by
// SystemActor at createdAt. orderDate is truncated to a UTC calendar day.
//
// Example:
//
//	customer, _ := order.NewCustomer("CUST-0001", "Jane Smith", "jane.smith@example.com")
//	item, _ := order.NewItem("ITEM-1", "USB-C Cable", 3, 1250)
//	o, err := order.NewOrder("ORD-0001", customer, time.Now(), []order.Item{item}, time.Now())
func NewOrder(id string, customer Customer, orderDate time.Time, items []Item, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		history:       []StatusChange{{Status: Pending, Timestamp: createdAt.UTC(), UpdatedBy: SystemActor}},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
	); err != nil {
		return nil, err
	}
	o.orderDate = truncateToDay(orderDate)

	return o, nil
}

// RestoreOrder rebuilds an order from storage. History must be newest first.
func RestoreOrder(
	id string,
	customer Customer,
	orderDate time.Time,
	status Status,
	items []Item,
	history []StatusChange,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setStatus(status),
		o.setHistory(history),
	); err != nil {
		return nil, err
	}
	o.orderDate = truncateToDay(orderDate)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() string           { return o.id }
func (o *Order) Customer() Customer   { return o.customer }
func (o *Order) OrderDate() time.Time { return o.orderDate }
func (o *Order) Status() Status       { return o.status }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// History returns a copy of the status history, newest first.
func (o *Order) History() []StatusChange {
	return slices.Clone(o.history)
}

// ChangeStatus moves the order to next if the machine allows it and records
// the change at the head of the history.
//
// Errors:
//   - *TransitionError when the machine rejects the change
//   - errs.ErrValueIsRequired when actor is empty
//   - errs.ErrValueIsInvalid when next is not a known status
func (o *Order) ChangeStatus(machine *StatusMachine, next Status, actor, note string, at time.Time) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	if err := machine.ValidateTransition(o.status, next); err != nil {
		return err
	}

	o.status = next
	o.history = slices.Insert(o.history, 0, StatusChange{
		Status:    next,
		Timestamp: at.UTC(),
		UpdatedBy: actor,
		Note:      note,
	})
	return nil
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	c := *o
	c.items = slices.Clone(o.items)
	c.history = slices.Clone(o.history)
	return &c
}

func (o *Order) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer.id == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("order must have at least one item"))
	}
	for i, item := range items {
		if item.id == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d was not created via NewItem", i))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setHistory(history []StatusChange) error {
	for _, h := range history {
		if err := h.Status.Validate(); err != nil {
			return err
		}
	}
	if len(history) > 0 && o.status != "" && history[0].Status != o.status {
		return errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("latest entry %s does not match status %s", history[0].Status, o.status))
	}
	o.history = slices.Clone(history)
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
