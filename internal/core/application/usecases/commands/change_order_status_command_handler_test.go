package commands_test

import (
	"errors"
	"testing"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChangeHandler(factory *MockOrderUoWFactory, invalidator commands.MetricsInvalidator) commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(factory, order.DefaultStatusMachine(), fixedClock, invalidator)
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	cmd, err := commands.NewChangeOrderStatusCommand("ORD-0001", "processing", "User 7", "picked")
	require.NoError(t, err)
	stored := newOrder(t, "ORD-0001", order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	invalidator := new(MockMetricsInvalidator)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, "ORD-0001").Return(stored, nil).Once(),
		repo.On("Update", ctx, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	invalidator.On("Invalidate", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	// When
	h := newChangeHandler(factory, invalidator)
	updated, err := h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, order.Processing, updated.Status())
	assert.Equal(t, order.StatusChange{
		Status: order.Processing, Timestamp: fixedNow, UpdatedBy: "User 7", Note: "picked",
	}, updated.History()[0])
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	invalidator.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_RejectedTransition(t *testing.T) {
	// Given
	ctx := t.Context()
	cmd, err := commands.NewChangeOrderStatusCommand("ORD-0001", "shipped", "User 7", "")
	require.NoError(t, err)
	stored := newOrder(t, "ORD-0001", order.Delivered)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	invalidator := new(MockMetricsInvalidator)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, "ORD-0001").Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	// When
	h := newChangeHandler(factory, invalidator)
	_, err = h.Handle(ctx, cmd)

	// Then
	var te *order.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, order.RejectedNotAllowed, te.Reason)
	assert.Equal(t, order.Delivered, te.Current)
	assert.Equal(t, order.Shipped, te.Requested)
	assert.Equal(t, "Cannot transition from Delivered to Shipped. Allowed: Cancelled", te.Message)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	invalidator.AssertNotCalled(t, "Invalidate", mock.Anything)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewChangeOrderStatusCommand("ORD-9999", "processing", "User 7", "")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, "ORD-9999").Return(nil, errs.NewObjectNotFoundError("order", "ORD-9999")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newChangeHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ChangeOrderStatusCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)

	h := newChangeHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestChangeOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewChangeOrderStatusCommand("ORD-0001", "processing", "User 7", "")

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := newChangeHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestChangeOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewChangeOrderStatusCommand("ORD-0001", "processing", "User 7", "")
	stored := newOrder(t, "ORD-0001", order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	invalidator := new(MockMetricsInvalidator)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, "ORD-0001").Return(stored, nil).Once(),
		repo.On("Update", ctx, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newChangeHandler(factory, invalidator)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	invalidator.AssertNotCalled(t, "Invalidate", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidationErrorIsIgnored(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewChangeOrderStatusCommand("ORD-0001", "cancelled", "User 7", "customer request")
	stored := newOrder(t, "ORD-0001", order.Shipped)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	invalidator := new(MockMetricsInvalidator)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, "ORD-0001").Return(stored, nil).Once()
	repo.On("Update", ctx, stored).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	invalidator.On("Invalidate", ctx).Return(errors.New("redis down")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newChangeHandler(factory, invalidator)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	invalidator.AssertExpectations(t)
}
