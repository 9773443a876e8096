package memory

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes between Begin and Commit and publishes them to the
// store in one step on Commit. Without Begin, repository writes go straight
// to the store.
type UnitOfWork struct {
	store *Store
	tx    *OrderRepository
}

// Begin starts staging writes. Calling Begin while a transaction is active is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.tx != nil {
		return nil
	}
	uow.tx = &OrderRepository{
		store:  uow.store,
		staged: make(map[string]*order.Order),
		added:  make(map[string]struct{}),
	}
	return nil
}

// Commit publishes staged writes. It fails with errs.ErrVersionIsInvalid,
// publishing nothing, when a staged order was changed in the store after
// this transaction read it. The transaction ends either way.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}
	tx := uow.tx
	uow.tx = nil
	return uow.store.commit(tx.staged, tx.added)
}

// Rollback drops staged writes.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}
	uow.tx = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.tx != nil {
		return uow.tx
	}
	return NewOrderRepository(uow.store)
}
