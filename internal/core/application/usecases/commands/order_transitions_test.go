package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type lifecycleMocks struct {
	factory   *LifecycleUoWFactoryMock
	uow       *LifecycleUoWMock
	orders    *OrderRepoMock
	chefs     *ChefRepoMock
	tables    *TableRepoMock
	publisher *PublisherMock
}

func newLifecycleMocks() lifecycleMocks {
	m := lifecycleMocks{
		factory:   &LifecycleUoWFactoryMock{},
		uow:       &LifecycleUoWMock{},
		orders:    &OrderRepoMock{},
		chefs:     &ChefRepoMock{},
		tables:    &TableRepoMock{},
		publisher: &PublisherMock{},
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	m.uow.On("OrderRepository").Return(m.orders)
	m.uow.On("ChefRepository").Return(m.chefs).Maybe()
	m.uow.On("TableRepository").Return(m.tables).Maybe()
	return m
}

func TestUpdateOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("completion releases the table held by the customer and the chef", func(t *testing.T) {
		m := newLifecycleMocks()
		chefID := kernel.NewUUID()
		d := orderDraft(t, kernel.NewUUID(), 3, &chefID)
		stored := orderIn(t, d, order.Processing)

		m.orders.On("Get", mock.Anything, d.ID).Return(stored, nil)
		m.orders.On("Update", mock.Anything, stored).Return(nil)
		m.orders.On("AddStatusChange", mock.Anything, mock.MatchedBy(func(c order.StatusChange) bool {
			return c.From == order.Processing && c.To == order.Done && c.ChangedBy == order.ChangedManually
		})).Return(nil)
		m.uow.On("LockTables", mock.Anything, false).Return(nil)
		m.tables.On("ReleaseHeldBy", mock.Anything, 3, "+919876543210").Return(nil)
		m.chefs.On("DecrementLoad", mock.Anything, chefID).Return(nil)
		m.uow.On("Commit", mock.Anything).Return(nil)
		m.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.Event) bool {
			return len(events) == 2 && events[0].Type == order.EventStatusChanged && events[1].Type == order.EventCompleted
		})).Return()

		cmd, err := commands.NewUpdateOrderStatusCommand(d.ID, order.Done)
		require.NoError(t, err)
		handler := commands.NewUpdateOrderStatusCommandHandler(m.factory, m.publisher, fixedClock)

		got, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Done, got.Status())
		assert.Equal(t, 0, got.ProcessingTime())
		m.orders.AssertExpectations(t)
		m.tables.AssertExpectations(t)
		m.chefs.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("same status is a no-op without writes or events", func(t *testing.T) {
		m := newLifecycleMocks()
		d := orderDraft(t, kernel.NewUUID(), 3, nil)
		m.orders.On("Get", mock.Anything, d.ID).Return(orderIn(t, d, order.Pending), nil)

		cmd, err := commands.NewUpdateOrderStatusCommand(d.ID, order.Pending)
		require.NoError(t, err)
		handler := commands.NewUpdateOrderStatusCommandHandler(m.factory, m.publisher, fixedClock)

		got, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, got.Status())
		m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
		m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("backward move is rejected", func(t *testing.T) {
		m := newLifecycleMocks()
		d := orderDraft(t, kernel.NewUUID(), 0, nil)
		m.orders.On("Get", mock.Anything, d.ID).Return(orderIn(t, d, order.Done), nil)

		cmd, err := commands.NewUpdateOrderStatusCommand(d.ID, order.Processing)
		require.NoError(t, err)
		handler := commands.NewUpdateOrderStatusCommandHandler(m.factory, m.publisher, fixedClock)

		_, err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("lost version race is retried on a fresh copy", func(t *testing.T) {
		m := newLifecycleMocks()
		d := orderDraft(t, kernel.NewUUID(), 0, nil)
		first := orderIn(t, d, order.Pending)
		second := orderIn(t, d, order.Pending)

		m.orders.On("Get", mock.Anything, d.ID).Return(first, nil).Once()
		m.orders.On("Get", mock.Anything, d.ID).Return(second, nil).Once()
		m.orders.On("Update", mock.Anything, first).Return(errs.NewConflictError("order", "was changed concurrently")).Once()
		m.orders.On("Update", mock.Anything, second).Return(nil).Once()
		m.orders.On("AddStatusChange", mock.Anything, mock.Anything).Return(nil).Once()
		m.uow.On("Commit", mock.Anything).Return(nil).Once()
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return().Once()

		cmd, err := commands.NewUpdateOrderStatusCommand(d.ID, order.Processing)
		require.NoError(t, err)
		handler := commands.NewUpdateOrderStatusCommandHandler(m.factory, m.publisher, fixedClock)

		got, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Same(t, second, got)
		m.factory.AssertNumberOfCalls(t, "Create", 2)
		m.orders.AssertExpectations(t)
	})

	t.Run("gives up with a conflict after bounded attempts", func(t *testing.T) {
		m := newLifecycleMocks()
		d := orderDraft(t, kernel.NewUUID(), 0, nil)
		for range commands.DefaultTransitionAttempts {
			m.orders.On("Get", mock.Anything, d.ID).Return(orderIn(t, d, order.Pending), nil).Once()
		}
		m.orders.On("Update", mock.Anything, mock.Anything).Return(errs.NewConflictError("order", "was changed concurrently"))

		cmd, err := commands.NewUpdateOrderStatusCommand(d.ID, order.Done)
		require.NoError(t, err)
		handler := commands.NewUpdateOrderStatusCommandHandler(m.factory, m.publisher, fixedClock)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		m.orders.AssertNumberOfCalls(t, "Update", commands.DefaultTransitionAttempts)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("missing order is not retried", func(t *testing.T) {
		m := newLifecycleMocks()
		id := kernel.NewUUID()
		m.orders.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("orderID", id))

		cmd, err := commands.NewUpdateOrderStatusCommand(id, order.Done)
		require.NoError(t, err)
		handler := commands.NewUpdateOrderStatusCommandHandler(m.factory, m.publisher, fixedClock)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		m.factory.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("not constructed command", func(t *testing.T) {
		handler := commands.NewUpdateOrderStatusCommandHandler(&LifecycleUoWFactoryMock{}, &PublisherMock{}, fixedClock)

		_, err := handler.Handle(t.Context(), commands.UpdateOrderStatusCommand{})

		require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	})
}

func TestTickOrderCommandHandler_Handle(t *testing.T) {
	t.Run("decrements a processing order", func(t *testing.T) {
		m := newLifecycleMocks()
		d := orderDraft(t, kernel.NewUUID(), 0, nil)
		stored := orderIn(t, d, order.Processing)

		m.orders.On("Get", mock.Anything, d.ID).Return(stored, nil)
		m.orders.On("Update", mock.Anything, stored).Return(nil)
		m.uow.On("Commit", mock.Anything).Return(nil)
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return()

		cmd, err := commands.NewTickOrderCommand(d.ID)
		require.NoError(t, err)
		handler := commands.NewTickOrderCommandHandler(m.factory, m.publisher, fixedClock)

		got, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Processing, got.Status())
		assert.Equal(t, 1, got.ProcessingTime())
		m.orders.AssertNotCalled(t, "AddStatusChange", mock.Anything, mock.Anything)
	})

	t.Run("pending order is left alone", func(t *testing.T) {
		m := newLifecycleMocks()
		d := orderDraft(t, kernel.NewUUID(), 0, nil)
		m.orders.On("Get", mock.Anything, d.ID).Return(orderIn(t, d, order.Pending), nil)

		cmd, err := commands.NewTickOrderCommand(d.ID)
		require.NoError(t, err)
		handler := commands.NewTickOrderCommandHandler(m.factory, m.publisher, fixedClock)

		got, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, got.ProcessingTime())
		m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAdvanceCountdownsCommandHandler_Handle(t *testing.T) {
	t.Run("ticks every processing order and skips failures", func(t *testing.T) {
		m := newLifecycleMocks()
		chefID := kernel.NewUUID()

		ticking := orderDraft(t, kernel.NewUUID(), 0, nil)
		finishing := orderDraft(t, kernel.NewUUID(), 0, &chefID)
		finishing.ProcessingTime = 1
		vanished := kernel.NewUUID()

		m.orders.On("GetIDsInStatus", mock.Anything, order.Processing).
			Return([]kernel.UUID{ticking.ID, vanished, finishing.ID}, nil)
		m.orders.On("Get", mock.Anything, ticking.ID).Return(orderIn(t, ticking, order.Processing), nil)
		m.orders.On("Get", mock.Anything, vanished).Return(nil, errs.NewObjectNotFoundError("orderID", vanished))
		m.orders.On("Get", mock.Anything, finishing.ID).Return(orderIn(t, finishing, order.Processing), nil)
		m.orders.On("Update", mock.Anything, mock.Anything).Return(nil)
		m.orders.On("AddStatusChange", mock.Anything, mock.MatchedBy(func(c order.StatusChange) bool {
			return c.OrderID == finishing.ID && c.To == order.Done && c.ChangedBy == order.ChangedByCountdown
		})).Return(nil).Once()
		m.chefs.On("DecrementLoad", mock.Anything, chefID).Return(nil).Once()
		m.uow.On("Commit", mock.Anything).Return(nil)
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return()

		handler := commands.NewAdvanceCountdownsCommandHandler(m.factory, m.publisher, fixedClock, discardLogger)

		result, err := handler.Handle(t.Context(), commands.NewAdvanceCountdownsCommand())

		require.NoError(t, err)
		assert.Equal(t, commands.AdvanceCountdownsResult{Ticked: 2, Completed: 1, Failed: 1}, result)
		m.orders.AssertExpectations(t)
		m.chefs.AssertExpectations(t)
		m.uow.AssertNotCalled(t, "LockTables", mock.Anything, mock.Anything)
	})

	t.Run("listing failure fails the sweep", func(t *testing.T) {
		m := newLifecycleMocks()
		m.orders.On("GetIDsInStatus", mock.Anything, order.Processing).Return(nil, assert.AnError)

		handler := commands.NewAdvanceCountdownsCommandHandler(m.factory, m.publisher, fixedClock, discardLogger)

		_, err := handler.Handle(t.Context(), commands.NewAdvanceCountdownsCommand())

		require.ErrorIs(t, err, assert.AnError)
	})
}
