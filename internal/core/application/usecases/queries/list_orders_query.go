package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersFilter holds raw filter parameters. Empty fields do not filter.
// Dates use the YYYY-MM-DD layout; amounts are cents.
type ListOrdersFilter struct {
	Status    string
	Search    string
	DateFrom  string
	DateTo    string
	MinAmount *int64
	MaxAmount *int64
}

// ListOrdersQuery selects one page of orders.
//
// Example:
//
//	limit := 50
//	query, err := NewListOrdersQuery(
//	    ListOrdersFilter{Status: "pending", Search: "smith"},
//	    "", &limit, "after",
//	)
//	page, err := handler.Handle(ctx, query)
//	next := page.Cursors.Next // nil on the last page
type ListOrdersQuery struct {
	criteria  ports.OrderCriteria
	minAmount *kernel.Cents
	maxAmount *kernel.Cents
	page      PageRequest

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates filter and pagination parameters together and
// reports every problem at once.
func NewListOrdersQuery(filter ListOrdersFilter, cursor string, limit *int, direction string) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}

	page, pageErr := NewPageRequest(cursor, limit, direction)
	q.page = page

	if err := errors.Join(
		q.setStatus(filter.Status),
		q.setSearch(filter.Search),
		q.setDates(filter.DateFrom, filter.DateTo),
		q.setAmounts(filter.MinAmount, filter.MaxAmount),
		pageErr,
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Criteria() ports.OrderCriteria { return q.criteria }
func (q ListOrdersQuery) Page() PageRequest             { return q.page }

func (q *ListOrdersQuery) setStatus(raw string) error {
	if raw == "" {
		return nil
	}
	status, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}
	q.criteria.Status = &status
	return nil
}

func (q *ListOrdersQuery) setSearch(search string) error {
	q.criteria.Search = strings.TrimSpace(search)
	return nil
}

func (q *ListOrdersQuery) setDates(from, to string) error {
	var err error
	if q.criteria.DateFrom, err = parseDate("dateFrom", from); err != nil {
		return err
	}
	if q.criteria.DateTo, err = parseDate("dateTo", to); err != nil {
		return err
	}
	if q.criteria.DateFrom != nil && q.criteria.DateTo != nil && q.criteria.DateFrom.After(*q.criteria.DateTo) {
		return errs.NewValueIsInvalidErrorWithCause("dateFrom",
			fmt.Errorf("%s is after dateTo %s", from, to))
	}
	return nil
}

func (q *ListOrdersQuery) setAmounts(minAmount, maxAmount *int64) error {
	if minAmount != nil {
		c := kernel.Cents(*minAmount)
		if err := c.Validate("minAmount"); err != nil {
			return err
		}
		q.minAmount = &c
	}
	if maxAmount != nil {
		c := kernel.Cents(*maxAmount)
		if err := c.Validate("maxAmount"); err != nil {
			return err
		}
		q.maxAmount = &c
	}
	if q.minAmount != nil && q.maxAmount != nil && *q.minAmount > *q.maxAmount {
		return errs.NewValueIsInvalidErrorWithCause("minAmount",
			fmt.Errorf("%d is greater than maxAmount %d", *minAmount, *maxAmount))
	}
	return nil
}

// matchesAmount reports whether a subtotal lies within the amount bounds,
// both inclusive.
func (q ListOrdersQuery) matchesAmount(subtotal kernel.Cents) bool {
	if q.minAmount != nil && subtotal < *q.minAmount {
		return false
	}
	if q.maxAmount != nil && subtotal > *q.maxAmount {
		return false
	}
	return true
}

func parseDate(paramName, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return &t, nil
}
