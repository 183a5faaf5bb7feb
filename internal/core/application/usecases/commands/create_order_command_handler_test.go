package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/billing"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type createOrderMocks struct {
	factory   *OrderUoWFactoryMock
	uow       *OrderUoWMock
	orders    *OrderRepoMock
	catalog   *MenuCatalogMock
	chefs     *ChefAssignerMock
	tables    *TableReserverMock
	publisher *PublisherMock
}

func newCreateOrderMocks() createOrderMocks {
	m := createOrderMocks{
		factory:   &OrderUoWFactoryMock{},
		uow:       &OrderUoWMock{},
		orders:    &OrderRepoMock{},
		catalog:   &MenuCatalogMock{},
		chefs:     &ChefAssignerMock{},
		tables:    &TableReserverMock{},
		publisher: &PublisherMock{},
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("MenuCatalog").Return(m.catalog)
	m.uow.On("OrderRepository").Return(m.orders).Maybe()
	m.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}

func (m createOrderMocks) handler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		m.factory, m.chefs, m.tables, m.publisher, billing.DefaultCalculator(), fixedClock, discardLogger,
	)
}

func menuItem(t *testing.T, name string, price int64, prep int) *menu.Item {
	t.Helper()
	item, err := menu.NewItem(kernel.NewUUID(), name, decimal.NewFromInt(price), prep, "mains")
	require.NoError(t, err)
	return item
}

func dineInCommand(t *testing.T, items ...*menu.Item) commands.CreateOrderCommand {
	t.Helper()
	lines := make([]commands.OrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, commands.OrderItem{MenuItemID: item.ID(), Quantity: 2})
	}
	cmd, err := commands.NewCreateOrderCommand(order.DineIn, 4, 2, "Asha", testPhone(t), "", "less spicy", lines)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("dine-in order is priced from the catalog and stored as pending", func(t *testing.T) {
		m := newCreateOrderMocks()
		tikka := menuItem(t, "Paneer Tikka", 250, 15)
		naan := menuItem(t, "Butter Naan", 40, 5)
		chefID := kernel.NewUUID()

		m.catalog.On("GetByIDs", mock.Anything, []kernel.UUID{tikka.ID(), naan.ID()}).
			Return([]*menu.Item{naan, tikka}, nil)
		m.chefs.On("Assign", mock.Anything).Return(chefID, nil)
		m.tables.On("Reserve", mock.Anything, 4, testPhone(t), 2).Return(nil)
		m.uow.On("Begin", mock.Anything).Return(nil)
		m.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		m.uow.On("Commit", mock.Anything).Return(nil)
		m.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.Event) bool {
			return len(events) == 1 && events[0].Type == order.EventCreated
		})).Return()

		created, err := m.handler().Handle(t.Context(), dineInCommand(t, tikka, naan))

		require.NoError(t, err)
		assert.Equal(t, order.Pending, created.Status())
		assert.Equal(t, 15, created.ProcessingTime())
		require.NotNil(t, created.ChefID())
		assert.Equal(t, chefID, *created.ChefID())
		assert.True(t, created.Bill().TotalPrice.Equal(decimal.NewFromInt(580)))
		assert.Equal(t, fixedNow, created.CreatedAt())
		m.chefs.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
		m.publisher.AssertExpectations(t)
	})

	t.Run("unknown menu item allocates nothing", func(t *testing.T) {
		m := newCreateOrderMocks()
		tikka := menuItem(t, "Paneer Tikka", 250, 15)
		m.catalog.On("GetByIDs", mock.Anything, mock.Anything).Return([]*menu.Item{}, nil)

		_, err := m.handler().Handle(t.Context(), dineInCommand(t, tikka))

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		m.chefs.AssertNotCalled(t, "Assign", mock.Anything)
	})

	t.Run("no active chef", func(t *testing.T) {
		m := newCreateOrderMocks()
		tikka := menuItem(t, "Paneer Tikka", 250, 15)
		m.catalog.On("GetByIDs", mock.Anything, mock.Anything).Return([]*menu.Item{tikka}, nil)
		m.chefs.On("Assign", mock.Anything).Return(kernel.UUID{}, errs.NewCapacityError("active chef"))

		_, err := m.handler().Handle(t.Context(), dineInCommand(t, tikka))

		require.ErrorIs(t, err, errs.ErrCapacity)
		m.tables.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reservation conflict hands the chef back", func(t *testing.T) {
		m := newCreateOrderMocks()
		tikka := menuItem(t, "Paneer Tikka", 250, 15)
		chefID := kernel.NewUUID()
		m.catalog.On("GetByIDs", mock.Anything, mock.Anything).Return([]*menu.Item{tikka}, nil)
		m.chefs.On("Assign", mock.Anything).Return(chefID, nil)
		m.tables.On("Reserve", mock.Anything, 4, mock.Anything, 2).Return(errs.NewConflictError("table", "4 is already reserved"))
		m.chefs.On("Release", mock.Anything, chefID).Return(nil).Once()

		_, err := m.handler().Handle(t.Context(), dineInCommand(t, tikka))

		require.ErrorIs(t, err, errs.ErrConflict)
		m.chefs.AssertExpectations(t)
		m.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("persist failure hands table and chef back", func(t *testing.T) {
		m := newCreateOrderMocks()
		tikka := menuItem(t, "Paneer Tikka", 250, 15)
		chefID := kernel.NewUUID()
		m.catalog.On("GetByIDs", mock.Anything, mock.Anything).Return([]*menu.Item{tikka}, nil)
		m.chefs.On("Assign", mock.Anything).Return(chefID, nil)
		m.tables.On("Reserve", mock.Anything, 4, mock.Anything, 2).Return(nil)
		m.uow.On("Begin", mock.Anything).Return(nil)
		m.orders.On("Add", mock.Anything, mock.Anything).Return(assert.AnError)
		m.tables.On("ReleaseHeldBy", mock.Anything, 4, testPhone(t)).Return(nil).Once()
		m.chefs.On("Release", mock.Anything, chefID).Return(nil).Once()

		_, err := m.handler().Handle(t.Context(), dineInCommand(t, tikka))

		require.ErrorIs(t, err, assert.AnError)
		m.tables.AssertExpectations(t)
		m.chefs.AssertExpectations(t)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
		m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("takeaway order reserves no table", func(t *testing.T) {
		m := newCreateOrderMocks()
		tikka := menuItem(t, "Paneer Tikka", 250, 15)
		m.catalog.On("GetByIDs", mock.Anything, mock.Anything).Return([]*menu.Item{tikka}, nil)
		m.chefs.On("Assign", mock.Anything).Return(kernel.NewUUID(), nil)
		m.uow.On("Begin", mock.Anything).Return(nil)
		m.orders.On("Add", mock.Anything, mock.Anything).Return(nil)
		m.uow.On("Commit", mock.Anything).Return(nil)
		m.publisher.On("Publish", mock.Anything, mock.Anything).Return()

		cmd, err := commands.NewCreateOrderCommand(order.Takeaway, 0, 0, "Ravi", testPhone(t), "12 MG Road", "",
			[]commands.OrderItem{{MenuItemID: tikka.ID(), Quantity: 1}})
		require.NoError(t, err)

		created, err := m.handler().Handle(t.Context(), cmd)

		require.NoError(t, err)
		_, dineIn := created.TableNumber()
		assert.False(t, dineIn)
		assert.True(t, created.Bill().DeliveryFee.IsPositive())
		m.tables.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("takeaway order with a table number is rejected before allocation", func(t *testing.T) {
		m := newCreateOrderMocks()
		tikka := menuItem(t, "Paneer Tikka", 250, 15)
		m.catalog.On("GetByIDs", mock.Anything, mock.Anything).Return([]*menu.Item{tikka}, nil)

		cmd, err := commands.NewCreateOrderCommand(order.Takeaway, 2, 0, "Ravi", testPhone(t), "12 MG Road", "",
			[]commands.OrderItem{{MenuItemID: tikka.ID(), Quantity: 1}})
		require.NoError(t, err)

		_, err = m.handler().Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		m.chefs.AssertNotCalled(t, "Assign", mock.Anything)
	})
}
