package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

// MaxNoteLength bounds the free-text note attached to a status change.
const MaxNoteLength = 500

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests moving one order to a new status.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand("ORD-0042", "shipped", "User 3", "left the warehouse")
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
//	var te *order.TransitionError
//	if errors.As(err, &te) {
//	    // show te.Message to the user
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID string
	status  order.Status
	actor   string
	note    string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates the request shape. The status must be
// one of the five known names; whether the change is legal is decided later
// against the stored order.
func NewChangeOrderStatusCommand(orderID, status, actor, note string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActor(actor),
		cmd.setNote(note),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() string      { return c.orderID }
func (c ChangeOrderStatusCommand) Status() order.Status { return c.status }
func (c ChangeOrderStatusCommand) Actor() string        { return c.actor }
func (c ChangeOrderStatusCommand) Note() string         { return c.note }

func (c *ChangeOrderStatusCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(raw string) (err error) {
	c.status, err = order.ParseStatus(raw)
	return err
}

func (c *ChangeOrderStatusCommand) setActor(actor string) (err error) {
	c.actor, err = parseActor(actor)
	return err
}

func (c *ChangeOrderStatusCommand) setNote(note string) (err error) {
	c.note, err = parseNote(note)
	return err
}

func parseActor(actor string) (string, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", errs.NewValueIsRequiredError("actor")
	}
	return actor, nil
}

func parseNote(note string) (string, error) {
	note = strings.TrimSpace(note)
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		return "", errs.NewValueIsOutOfRangeError("note length", n, 0, MaxNoteLength)
	}
	return note, nil
}
