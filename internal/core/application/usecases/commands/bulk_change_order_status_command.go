package commands

import (
	"errors"
	"fmt"
	"strings"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

// MaxBulkOrders bounds the number of orders one bulk request may touch.
const MaxBulkOrders = 100

var ErrBulkChangeOrderStatusCommandIsNotConstructed = errors.New(
	"BulkChangeOrderStatusCommand must be created via NewBulkChangeOrderStatusCommand constructor",
)

// BulkChangeOrderStatusCommand requests moving several orders to the same
// status. Duplicate ids are collapsed, keeping first occurrence order.
type BulkChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs []string
	status   order.Status
	actor    string
	note     string

	guard guard.ConstructorGuard
}

// NewBulkChangeOrderStatusCommand validates the request shape.
func NewBulkChangeOrderStatusCommand(orderIDs []string, status, actor, note string) (BulkChangeOrderStatusCommand, error) {
	cmd := BulkChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setStatus(status),
		cmd.setActor(actor),
		cmd.setNote(note),
	); err != nil {
		return BulkChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkChangeOrderStatusCommandIsNotConstructed)
}

// OrderIDs returns a copy of the requested ids.
func (c BulkChangeOrderStatusCommand) OrderIDs() []string {
	return append([]string(nil), c.orderIDs...)
}

func (c BulkChangeOrderStatusCommand) Status() order.Status { return c.status }
func (c BulkChangeOrderStatusCommand) Actor() string        { return c.actor }
func (c BulkChangeOrderStatusCommand) Note() string         { return c.note }

func (c *BulkChangeOrderStatusCommand) setOrderIDs(orderIDs []string) error {
	seen := make(map[string]struct{}, len(orderIDs))
	ids := make([]string, 0, len(orderIDs))
	for i, id := range orderIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("orderIds[%d]", i))
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}
	if len(ids) > MaxBulkOrders {
		return errs.NewValueIsOutOfRangeError("orderIds length", len(ids), 1, MaxBulkOrders)
	}

	c.orderIDs = ids
	return nil
}

func (c *BulkChangeOrderStatusCommand) setStatus(raw string) (err error) {
	c.status, err = order.ParseStatus(raw)
	return err
}

func (c *BulkChangeOrderStatusCommand) setActor(actor string) (err error) {
	c.actor, err = parseActor(actor)
	return err
}

func (c *BulkChangeOrderStatusCommand) setNote(note string) (err error) {
	c.note, err = parseNote(note)
	return err
}
