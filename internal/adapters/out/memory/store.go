// Package memory keeps orders in process memory. It backs the order desk when
// no database is configured and serves as the mock API the dashboard talks to
// during development.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside of a transaction.
var ErrNoActiveTransaction = errors.New("no active transaction")

// Store is the shared order table. Aggregates are cloned on every read and
// write so callers never alias stored state.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

func NewStore() *Store {
	return &Store{orders: make(map[string]*order.Order)}
}

// Len returns the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// commit publishes staged aggregates in one step. Ids in added must not be
// stored yet; every other staged order must extend the stored history,
// otherwise another writer got there first and nothing is published.
func (s *Store) commit(staged map[string]*order.Order, added map[string]struct{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, o := range staged {
		current, exists := s.orders[id]
		if _, isNew := added[id]; isNew {
			if exists {
				return errs.NewValueIsInvalidError("order " + id + " already exists")
			}
			continue
		}
		if exists && !extendsHistory(o, current) {
			return errs.NewVersionIsInvalidError("order",
				fmt.Errorf("order %s was changed by another request", id))
		}
	}

	for id, o := range staged {
		s.orders[id] = o
	}
	return nil
}

// extendsHistory reports whether next was derived from stored: history is
// append-only, so the stored entries must be the oldest entries of next.
func extendsHistory(next, stored *order.Order) bool {
	h, base := next.History(), stored.History()
	if len(base) > len(h) {
		return false
	}
	return slices.EqualFunc(h[len(h)-len(base):], base, sameChange)
}

func sameChange(a, b order.StatusChange) bool {
	return a.Status == b.Status &&
		a.Timestamp.Equal(b.Timestamp) &&
		a.UpdatedBy == b.UpdatedBy &&
		a.Note == b.Note
}

// OrderRepository implements ports.OrderRepository over a Store. When bound
// to a transaction, writes are staged and reads see them before the store.
type OrderRepository struct {
	store  *Store
	staged map[string]*order.Order
	added  map[string]struct{}
}

// NewOrderRepository returns a repository that writes straight to the store.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.lookup(aggregate.ID()); exists {
		return errs.NewValueIsInvalidError("order " + aggregate.ID() + " already exists")
	}
	return r.put(aggregate, true)
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.lookup(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	return r.put(aggregate, false)
}

func (r *OrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	o, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o.Clone(), nil
}

func (r *OrderRepository) GetMany(_ context.Context, ids []string) ([]*order.Order, error) {
	result := make([]*order.Order, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if o, ok := r.lookup(id); ok {
			result = append(result, o.Clone())
		}
	}
	sortForList(result)
	return result, nil
}

func (r *OrderRepository) Find(_ context.Context, criteria ports.OrderCriteria) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range r.snapshot() {
		if matches(o, criteria) {
			result = append(result, o.Clone())
		}
	}
	sortForList(result)
	if result == nil {
		result = []*order.Order{}
	}
	return result, nil
}

func (r *OrderRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.snapshot())), nil
}

func (r *OrderRepository) lookup(id string) (*order.Order, bool) {
	if o, ok := r.staged[id]; ok {
		return o, true
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.orders[id]
	return o, ok
}

func (r *OrderRepository) put(aggregate *order.Order, isNew bool) error {
	c := aggregate.Clone()
	if r.staged != nil {
		r.staged[c.ID()] = c
		if isNew {
			r.added[c.ID()] = struct{}{}
		}
		return nil
	}

	var added map[string]struct{}
	if isNew {
		added = map[string]struct{}{c.ID(): {}}
	}
	return r.store.commit(map[string]*order.Order{c.ID(): c}, added)
}

func (r *OrderRepository) snapshot() map[string]*order.Order {
	r.store.mu.RLock()
	view := make(map[string]*order.Order, len(r.store.orders)+len(r.staged))
	for id, o := range r.store.orders {
		view[id] = o
	}
	r.store.mu.RUnlock()

	for id, o := range r.staged {
		view[id] = o
	}
	return view
}

func matches(o *order.Order, c ports.OrderCriteria) bool {
	if c.Status != nil && o.Status() != *c.Status {
		return false
	}
	if c.DateFrom != nil && o.OrderDate().Before(day(*c.DateFrom)) {
		return false
	}
	if c.DateTo != nil && o.OrderDate().After(day(*c.DateTo)) {
		return false
	}
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		customer := o.Customer()
		if !strings.Contains(strings.ToLower(o.ID()), needle) &&
			!strings.Contains(strings.ToLower(customer.Name()), needle) &&
			!strings.Contains(strings.ToLower(customer.Email()), needle) {
			return false
		}
	}
	return true
}

func sortForList(orders []*order.Order) {
	slices.SortFunc(orders, func(a, b *order.Order) int {
		if c := b.OrderDate().Compare(a.OrderDate()); c != 0 {
			return c
		}
		return strings.Compare(b.ID(), a.ID())
	})
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
