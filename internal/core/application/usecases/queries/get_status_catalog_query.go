package queries

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var ErrGetStatusCatalogQueryIsNotConstructed = errors.New(
	"GetStatusCatalogQuery must be created via NewGetStatusCatalogQuery constructor",
)

// GetStatusCatalogQuery lists every status with its display metadata and
// outgoing transitions.
type GetStatusCatalogQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatusCatalogQuery() GetStatusCatalogQuery {
	return GetStatusCatalogQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStatusCatalogQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusCatalogQueryIsNotConstructed)
}

// StatusDescriptor describes one status.
type StatusDescriptor struct {
	Status             order.Status
	Metadata           order.Metadata
	AllowedTransitions []order.Status
	IsTerminal         bool
	CanBeCancelled     bool
}

// GetStatusCatalogQueryHandler reads the catalog off a StatusMachine.
type GetStatusCatalogQueryHandler struct {
	machine *order.StatusMachine
}

func NewGetStatusCatalogQueryHandler(machine *order.StatusMachine) GetStatusCatalogQueryHandler {
	return GetStatusCatalogQueryHandler{machine: machine}
}

// Handle returns one descriptor per status in table order.
func (h GetStatusCatalogQueryHandler) Handle(_ context.Context, query GetStatusCatalogQuery) ([]StatusDescriptor, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := h.machine.Statuses()
	catalog := make([]StatusDescriptor, 0, len(statuses))
	for _, s := range statuses {
		md, err := h.machine.Metadata(s)
		if err != nil {
			return nil, err
		}
		allowed, err := h.machine.AllowedTransitions(s)
		if err != nil {
			return nil, err
		}
		cancellable, err := h.machine.CanBeCancelled(s)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, StatusDescriptor{
			Status:             s,
			Metadata:           md,
			AllowedTransitions: allowed,
			IsTerminal:         len(allowed) == 0,
			CanBeCancelled:     cancellable,
		})
	}
	return catalog, nil
}
