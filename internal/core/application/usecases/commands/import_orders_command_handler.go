package commands

import (
	"context"
)

// ImportOrdersCommandHandler adds a batch of orders in one transaction. Either
// every order is stored or none is.
type ImportOrdersCommandHandler struct {
	uowFactory  OrderUoWFactory
	invalidator MetricsInvalidator
}

// NewImportOrdersCommandHandler creates the handler. invalidator may be nil.
func NewImportOrdersCommandHandler(uowFactory OrderUoWFactory, invalidator MetricsInvalidator) ImportOrdersCommandHandler {
	_, invalidator = orDefaults(nil, invalidator)
	return ImportOrdersCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle stores the batch and returns how many orders were added.
func (h *ImportOrdersCommandHandler) Handle(ctx context.Context, cmd ImportOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	for _, o := range cmd.Orders() {
		if err := orderRepo.Add(ctx, o); err != nil {
			return 0, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	_ = h.invalidator.Invalidate(ctx)

	return len(cmd.Orders()), nil
}
