package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies a single status change.
//
// The order is loaded, checked against the StatusMachine and saved inside one
// transaction. A rejected transition is returned as *order.TransitionError and
// nothing is written.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, order.DefaultStatusMachine(), time.Now, cache)
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	machine     *order.StatusMachine
	clock       Clock
	invalidator MetricsInvalidator
}

// NewChangeOrderStatusCommandHandler creates the handler. clock defaults to
// time.Now and invalidator may be nil.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	machine *order.StatusMachine,
	clock Clock,
	invalidator MetricsInvalidator,
) ChangeOrderStatusCommandHandler {
	clock, invalidator = orDefaults(clock, invalidator)
	return ChangeOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		machine:     machine,
		clock:       clock,
		invalidator: invalidator,
	}
}

// Handle loads the order, applies the change and commits. It returns the
// updated order.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.ChangeStatus(h.machine, cmd.Status(), cmd.Actor(), cmd.Note(), h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// a failed invalidation only delays fresh metrics until the TTL expires
	_ = h.invalidator.Invalidate(ctx)

	return o, nil
}
