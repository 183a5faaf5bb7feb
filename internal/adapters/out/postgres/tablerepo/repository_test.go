package tablerepo_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/sqlitetest"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type TableRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *tablerepo.GormTableRepository
}

func TestTableRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TableRepositoryTestSuite))
}

func (suite *TableRepositoryTestSuite) SetupTest() {
	suite.db = sqlitetest.Open(suite.T())
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = tablerepo.NewGormTableRepository(suite.db, tracker)
}

func (suite *TableRepositoryTestSuite) TestAdd_DuplicateNumber_ReturnsConflict() {
	suite.addTable(1, 4)

	dup, err := table.NewTable(kernel.NewUUID(), 1, 2, "")
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), dup)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *TableRepositoryTestSuite) TestMaxNumberAndCount() {
	ctx := context.Background()

	maxNumber, err := suite.repository.MaxNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(0, maxNumber)

	suite.addTable(1, 2)
	suite.addTable(2, 4)

	maxNumber, err = suite.repository.MaxNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(2, maxNumber)

	count, err := suite.repository.Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *TableRepositoryTestSuite) TestUpdate_KeepsReservation() {
	ctx := context.Background()
	t := suite.addTable(1, 4)
	ok, err := suite.repository.Reserve(ctx, 1, "+919876543210", 3)
	suite.Require().NoError(err)
	suite.Require().True(ok)

	suite.Require().NoError(t.Rename("Window"))
	suite.Require().NoError(suite.repository.Update(ctx, t))

	got, err := suite.repository.GetByNumber(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("Window", got.Name())
	suite.True(got.IsReserved())
	suite.Equal(3, got.NumberOfMembers())
}

func (suite *TableRepositoryTestSuite) TestReserve_ConditionalUpdate() {
	ctx := context.Background()
	suite.addTable(1, 4)

	testCases := []struct {
		name    string
		number  int
		members int
		updated bool
	}{
		{name: "party larger than table", number: 1, members: 5, updated: false},
		{name: "unknown table", number: 9, members: 2, updated: false},
		{name: "free table", number: 1, members: 4, updated: true},
		{name: "already reserved", number: 1, members: 2, updated: false},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			ok, err := suite.repository.Reserve(ctx, tc.number, "+919876543210", tc.members)
			suite.Require().NoError(err)
			suite.Equal(tc.updated, ok)
		})
	}

	got, err := suite.repository.GetByNumber(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("+919876543210", got.ReservedBy())
	suite.Equal(4, got.NumberOfMembers())
}

func (suite *TableRepositoryTestSuite) TestReleaseHeldBy_OnlyReleasesOwnReservation() {
	ctx := context.Background()
	suite.addTable(1, 4)
	_, err := suite.repository.Reserve(ctx, 1, "+911111111111", 2)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.ReleaseHeldBy(ctx, 1, "+912222222222"))
	got, err := suite.repository.GetByNumber(ctx, 1)
	suite.Require().NoError(err)
	suite.True(got.IsReserved())

	suite.Require().NoError(suite.repository.ReleaseHeldBy(ctx, 1, "+911111111111"))
	got, err = suite.repository.GetByNumber(ctx, 1)
	suite.Require().NoError(err)
	suite.False(got.IsReserved())
	suite.Empty(got.ReservedBy())
	suite.Equal(0, got.NumberOfMembers())
}

func (suite *TableRepositoryTestSuite) TestRelease_Idempotent() {
	ctx := context.Background()
	suite.addTable(1, 4)
	_, err := suite.repository.Reserve(ctx, 1, "+911111111111", 2)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Release(ctx, 1))
	suite.Require().NoError(suite.repository.Release(ctx, 1))

	got, err := suite.repository.GetByNumber(ctx, 1)
	suite.Require().NoError(err)
	suite.False(got.IsReserved())
}

func (suite *TableRepositoryTestSuite) TestDeleteAndRenumber_ClosesGap() {
	ctx := context.Background()
	tables := make([]*table.Table, 0, 4)
	for n := 1; n <= 4; n++ {
		tables = append(tables, suite.addTable(n, 2))
	}

	deleted, err := suite.repository.DeleteAndRenumber(ctx, tables[1].ID())
	suite.Require().NoError(err)
	suite.True(deleted)

	for _, tc := range []struct {
		id     kernel.UUID
		number int
	}{
		{tables[0].ID(), 1},
		{tables[2].ID(), 2},
		{tables[3].ID(), 3},
	} {
		got, getErr := suite.repository.Get(ctx, tc.id)
		suite.Require().NoError(getErr)
		suite.Equal(tc.number, got.Number())
	}

	_, err = suite.repository.Get(ctx, tables[1].ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TableRepositoryTestSuite) TestDeleteAndRenumber_ReservedTableIsKept() {
	ctx := context.Background()
	t := suite.addTable(1, 2)
	suite.addTable(2, 2)
	_, err := suite.repository.Reserve(ctx, 1, "+911111111111", 2)
	suite.Require().NoError(err)

	deleted, err := suite.repository.DeleteAndRenumber(ctx, t.ID())
	suite.Require().NoError(err)
	suite.False(deleted)

	count, err := suite.repository.Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *TableRepositoryTestSuite) TestDeleteAndRenumber_Unknown_ReturnsNotFound() {
	_, err := suite.repository.DeleteAndRenumber(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TableRepositoryTestSuite) TestDeleteAndRenumber_MovesOpenOrders() {
	ctx := context.Background()
	first := suite.addTable(1, 2)
	suite.addTable(2, 2)
	suite.addTable(3, 2)

	seated := suite.addOrder("ORD_1", 3, order.Processing)
	served := suite.addOrder("ORD_2", 3, order.Done)
	below := suite.addOrder("ORD_3", 1, order.Pending)

	deleted, err := suite.repository.DeleteAndRenumber(ctx, first.ID())
	suite.Require().NoError(err)
	suite.True(deleted)

	suite.Equal(2, suite.orderTable(seated).number)
	suite.Equal(1, suite.orderTable(seated).version)
	suite.Equal(3, suite.orderTable(served).number)
	suite.Equal(0, suite.orderTable(served).version)
	suite.Equal(1, suite.orderTable(below).number)
}

func (suite *TableRepositoryTestSuite) addOrder(number string, tableNumber int, status order.Status) uuid.UUID {
	dto := orderrepo.OrderDTO{
		ID:            uuid.New(),
		Number:        number,
		Type:          order.DineIn.String(),
		TableNumber:   &tableNumber,
		CustomerName:  "Asha",
		CustomerPhone: "+919876543210",
		Items:         datatypes.JSONSlice[orderrepo.LineItemDTO]{},
		Status:        status.String(),
		CreatedAt:     time.Now().UTC(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

type storedOrderTable struct {
	number  int
	version int
}

func (suite *TableRepositoryTestSuite) orderTable(id uuid.UUID) storedOrderTable {
	var dto orderrepo.OrderDTO
	suite.Require().NoError(suite.db.Where("id = ?", id).First(&dto).Error)
	suite.Require().NotNil(dto.TableNumber)
	return storedOrderTable{number: *dto.TableNumber, version: dto.Version}
}

func (suite *TableRepositoryTestSuite) addTable(number, size int) *table.Table {
	t, err := table.NewTable(kernel.NewUUID(), number, size, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), t))
	return t
}
