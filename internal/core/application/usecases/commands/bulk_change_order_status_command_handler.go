package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// BulkFailure is one order the bulk change could not apply.
type BulkFailure struct {
	OrderID string
	Err     error
}

// BulkChangeOrderStatusResult reports the outcome per order.
type BulkChangeOrderStatusResult struct {
	Updated []*order.Order
	Failed  []BulkFailure
}

// BulkChangeOrderStatusCommandHandler applies one status to many orders in a
// single transaction.
//
// Each order is checked on its own: missing orders and rejected transitions
// are reported in Failed while the rest are updated. Any storage error aborts
// the whole batch.
type BulkChangeOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	machine     *order.StatusMachine
	clock       Clock
	invalidator MetricsInvalidator
}

// NewBulkChangeOrderStatusCommandHandler creates the handler. clock defaults
// to time.Now and invalidator may be nil.
func NewBulkChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	machine *order.StatusMachine,
	clock Clock,
	invalidator MetricsInvalidator,
) BulkChangeOrderStatusCommandHandler {
	clock, invalidator = orDefaults(clock, invalidator)
	return BulkChangeOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		machine:     machine,
		clock:       clock,
		invalidator: invalidator,
	}
}

// Handle processes the bulk command. Failed keeps the request order.
func (h *BulkChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd BulkChangeOrderStatusCommand,
) (BulkChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BulkChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	found, err := orderRepo.GetMany(ctx, cmd.OrderIDs())
	if err != nil {
		return BulkChangeOrderStatusResult{}, err
	}

	byID := make(map[string]*order.Order, len(found))
	for _, o := range found {
		byID[o.ID()] = o
	}

	now := h.clock()
	result := BulkChangeOrderStatusResult{
		Updated: make([]*order.Order, 0, len(found)),
		Failed:  make([]BulkFailure, 0),
	}

	for _, id := range cmd.OrderIDs() {
		o, ok := byID[id]
		if !ok {
			result.Failed = append(result.Failed, BulkFailure{
				OrderID: id,
				Err:     errs.NewObjectNotFoundError("order", id),
			})
			continue
		}

		if err = o.ChangeStatus(h.machine, cmd.Status(), cmd.Actor(), cmd.Note(), now); err != nil {
			result.Failed = append(result.Failed, BulkFailure{OrderID: id, Err: err})
			continue
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return BulkChangeOrderStatusResult{}, err
		}
		result.Updated = append(result.Updated, o)
	}

	if err = uow.Commit(ctx); err != nil {
		return BulkChangeOrderStatusResult{}, err
	}

	if len(result.Updated) > 0 {
		_ = h.invalidator.Invalidate(ctx)
	}

	return result, nil
}
