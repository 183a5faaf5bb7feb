package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/sqlitetest"
	"restaurant/internal/core/domain/model/billing"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.db = sqlitetest.Open(suite.T())
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	chefID := kernel.NewUUID()
	o := suite.newOrder(order.DineIn, &chefID)
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), got.Number())
	suite.Equal(order.DineIn, got.Type())
	tableNumber, ok := got.TableNumber()
	suite.True(ok)
	suite.Equal(3, tableNumber)
	suite.Equal(2, got.NumberOfMembers())
	suite.Equal("Asha", got.CustomerName())
	suite.True(o.CustomerPhone().IsEqual(got.CustomerPhone()))
	suite.Equal("no onions", got.CookingInstructions())
	suite.Require().Len(got.Items(), 2)
	suite.Equal("Paneer Tikka", got.Items()[0].Name())
	suite.True(decimal.NewFromInt(100).Equal(got.Items()[0].Price()))
	suite.Equal(2, got.Items()[0].Quantity())
	suite.Equal("extra spicy", got.Items()[0].SpecialInstructions())
	suite.True(decimal.RequireFromString("250").Equal(got.Bill().TotalPrice))
	suite.True(decimal.RequireFromString("12.5").Equal(got.Bill().Tax))
	suite.True(decimal.Zero.Equal(got.Bill().DeliveryFee))
	suite.True(decimal.RequireFromString("262.5").Equal(got.Bill().GrandTotal))
	suite.Equal(15, got.ProcessingTime())
	suite.Equal(order.Pending, got.Status())
	suite.Require().NotNil(got.ChefID())
	suite.Equal(chefID, *got.ChefID())
	suite.True(o.CreatedAt().Equal(got.CreatedAt()))
	suite.Equal(0, got.Version())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestAdd_DuplicateNumber_ReturnsConflict() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	first := suite.newOrder(order.Takeaway, nil)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.newOrderWithNumber(order.Takeaway, first.Number())
	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	o := suite.newOrder(order.Takeaway, nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := o.ChangeStatus(order.Processing)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, got.Status())
	suite.Equal(1, got.Version())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	o := suite.newOrder(order.Takeaway, nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.ChangeStatus(order.Processing)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.ChangeStatus(order.Done)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, got.Status())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	o := suite.newOrder(order.Takeaway, nil)

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestGetIDsInStatus_FiltersAndOrdersByCreation() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	older := suite.newOrderAt(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	newer := suite.newOrderAt(time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC))
	pending := suite.newOrderAt(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	for _, o := range []*order.Order{newer, older, pending} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	for _, o := range []*order.Order{newer, older} {
		_, err := o.ChangeStatus(order.Processing)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Update(ctx, o))
	}

	ids, err := suite.repository.GetIDsInStatus(ctx, order.Processing)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{older.ID(), newer.ID()}, ids)

	ids, err = suite.repository.GetIDsInStatus(ctx, order.Done)
	suite.Require().NoError(err)
	suite.Empty(ids)
}

func (suite *OrderRepositoryTestSuite) TestAddStatusChange_AppendsAuditRow() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	o := suite.newOrder(order.Takeaway, nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tr, err := o.ChangeStatus(order.Processing)
	suite.Require().NoError(err)
	change, ok := order.NewStatusChange(o, tr, order.ChangedManually, time.Now())
	suite.Require().True(ok)

	suite.Require().NoError(suite.repository.AddStatusChange(ctx, change))

	var rows []orderrepo.StatusChangeDTO
	suite.Require().NoError(suite.db.Find(&rows).Error)
	suite.Require().Len(rows, 1)
	suite.Equal("pending", rows[0].FromStatus)
	suite.Equal("processing", rows[0].ToStatus)
	suite.Equal("manual", rows[0].ChangedBy)
}

func (suite *OrderRepositoryTestSuite) newOrder(t order.Type, chefID *kernel.UUID) *order.Order {
	return suite.build(t, order.NewNumber(time.Now(), nil), time.Now(), chefID)
}

func (suite *OrderRepositoryTestSuite) newOrderWithNumber(t order.Type, number string) *order.Order {
	return suite.build(t, number, time.Now(), nil)
}

func (suite *OrderRepositoryTestSuite) newOrderAt(at time.Time) *order.Order {
	return suite.build(order.Takeaway, order.NewNumber(at, nil), at, nil)
}

func (suite *OrderRepositoryTestSuite) build(t order.Type, number string, at time.Time, chefID *kernel.UUID) *order.Order {
	phone, err := kernel.NewPhone("+91 98765 43210")
	suite.Require().NoError(err)

	tikka, err := order.NewLineItem(kernel.NewUUID(), "Paneer Tikka", decimal.NewFromInt(100), 2, "extra spicy")
	suite.Require().NoError(err)
	naan, err := order.NewLineItem(kernel.NewUUID(), "Butter Naan", decimal.NewFromInt(50), 1, "")
	suite.Require().NoError(err)

	d := order.Draft{
		ID:                  kernel.NewUUID(),
		Number:              number,
		Type:                t,
		CustomerName:        "Asha",
		CustomerPhone:       phone,
		CookingInstructions: "no onions",
		Items:               []order.LineItem{tikka, naan},
		ProcessingTime:      15,
		ChefID:              chefID,
		CreatedAt:           at,
	}
	if t == order.DineIn {
		d.TableNumber = 3
		d.NumberOfMembers = 2
	} else {
		d.CustomerAddress = "12 MG Road"
	}

	o, err := order.NewOrder(d, billing.DefaultCalculator())
	suite.Require().NoError(err)
	return o
}
