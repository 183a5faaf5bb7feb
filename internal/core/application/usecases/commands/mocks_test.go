package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/billing"
	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepoMock) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepoMock) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetIDsInStatus(ctx context.Context, status order.Status) ([]kernel.UUID, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *OrderRepoMock) AddStatusChange(ctx context.Context, change order.StatusChange) error {
	return m.Called(ctx, change).Error(0)
}

// ChefRepoMock only records what completion touches.
type ChefRepoMock struct {
	mock.Mock
	ports.ChefRepository
}

func (m *ChefRepoMock) DecrementLoad(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// TableRepoMock only records what completion touches.
type TableRepoMock struct {
	mock.Mock
	ports.TableRepository
}

func (m *TableRepoMock) ReleaseHeldBy(ctx context.Context, number int, phone string) error {
	return m.Called(ctx, number, phone).Error(0)
}

type MenuCatalogMock struct{ mock.Mock }

func (m *MenuCatalogMock) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.Item), args.Error(1)
}

type LifecycleUoWMock struct{ mock.Mock }

func (m *LifecycleUoWMock) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *LifecycleUoWMock) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *LifecycleUoWMock) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *LifecycleUoWMock) LockTables(ctx context.Context, exclusive bool) error {
	return m.Called(ctx, exclusive).Error(0)
}

func (m *LifecycleUoWMock) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *LifecycleUoWMock) ChefRepository() ports.ChefRepository {
	return m.Called().Get(0).(ports.ChefRepository)
}

func (m *LifecycleUoWMock) TableRepository() ports.TableRepository {
	return m.Called().Get(0).(ports.TableRepository)
}

type LifecycleUoWFactoryMock struct{ mock.Mock }

func (m *LifecycleUoWFactoryMock) Create() commands.LifecycleUoW {
	return m.Called().Get(0).(commands.LifecycleUoW)
}

type OrderUoWMock struct{ mock.Mock }

func (m *OrderUoWMock) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *OrderUoWMock) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *OrderUoWMock) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *OrderUoWMock) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *OrderUoWMock) MenuCatalog() ports.MenuCatalog {
	return m.Called().Get(0).(ports.MenuCatalog)
}

type OrderUoWFactoryMock struct{ mock.Mock }

func (m *OrderUoWFactoryMock) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, events ...order.Event) {
	m.Called(ctx, events)
}

type ChefAssignerMock struct{ mock.Mock }

func (m *ChefAssignerMock) Assign(ctx context.Context) (kernel.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *ChefAssignerMock) Release(ctx context.Context, chefID kernel.UUID) error {
	return m.Called(ctx, chefID).Error(0)
}

type TableReserverMock struct{ mock.Mock }

func (m *TableReserverMock) Reserve(ctx context.Context, number int, phone kernel.Phone, members int) error {
	return m.Called(ctx, number, phone, members).Error(0)
}

func (m *TableReserverMock) ReleaseHeldBy(ctx context.Context, number int, phone kernel.Phone) error {
	return m.Called(ctx, number, phone).Error(0)
}

type ChefRosterMock struct{ mock.Mock }

func (m *ChefRosterMock) AddChef(ctx context.Context, c *chef.Chef) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ChefRosterMock) UpdateChef(ctx context.Context, id kernel.UUID, name string, status chef.Status) (*chef.Chef, error) {
	args := m.Called(ctx, id, name, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chef.Chef), args.Error(1)
}

func (m *ChefRosterMock) RemoveChef(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type TableManagerMock struct{ mock.Mock }

func (m *TableManagerMock) Create(ctx context.Context, size int, name string) (*table.Table, error) {
	args := m.Called(ctx, size, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *TableManagerMock) Update(ctx context.Context, id kernel.UUID, size *int, name *string) (*table.Table, error) {
	args := m.Called(ctx, id, size, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *TableManagerMock) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TableManagerMock) ReserveByID(ctx context.Context, id kernel.UUID, phone kernel.Phone, members int) (*table.Table, error) {
	args := m.Called(ctx, id, phone, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *TableManagerMock) ReleaseByID(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func testPhone(t *testing.T) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone("+919876543210")
	require.NoError(t, err)
	return phone
}

// orderDraft builds a dine-in draft at table 3, or a takeaway draft when table is 0.
func orderDraft(t *testing.T, id kernel.UUID, tableNumber int, chefID *kernel.UUID) order.Draft {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Paneer Tikka", decimal.NewFromInt(250), 2, "")
	require.NoError(t, err)

	d := order.Draft{
		ID:             id,
		Number:         order.NewNumber(fixedNow, nil),
		Type:           order.DineIn,
		TableNumber:    tableNumber,
		CustomerName:   "Asha",
		CustomerPhone:  testPhone(t),
		Items:          []order.LineItem{item},
		ProcessingTime: 2,
		ChefID:         chefID,
		CreatedAt:      fixedNow,
	}
	if tableNumber == 0 {
		d.Type = order.Takeaway
		d.CustomerAddress = "12 MG Road"
	} else {
		d.NumberOfMembers = 2
	}
	return d
}

// orderIn returns a fresh aggregate for d moved to status.
func orderIn(t *testing.T, d order.Draft, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(d, billing.DefaultCalculator())
	require.NoError(t, err)
	if status != order.Pending {
		_, err = o.ChangeStatus(status)
		require.NoError(t, err)
	}
	return o
}
