package tablerepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/dberr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

const ordersTable = "orders"

// GormTableRepository implements ports.TableRepository using GORM.
type GormTableRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTableRepository creates a new GORM table repository.
func NewGormTableRepository(db *gorm.DB, tracker aggregateTracker) *GormTableRepository {
	return &GormTableRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new table. A taken number yields a ConflictError.
func (r *GormTableRepository) Add(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "table")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves size and name of an existing table.
func (r *GormTableRepository) Update(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TableDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"size": dto.Size,
		"name": dto.Name,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("table", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a table by ID.
func (r *GormTableRepository) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

// GetByNumber retrieves a table by its current number.
func (r *GormTableRepository) GetByNumber(ctx context.Context, number int) (*table.Table, error) {
	return r.first(ctx, number, "table_number = ?", number)
}

func (r *GormTableRepository) first(ctx context.Context, key any, query string, args ...any) (*table.Table, error) {
	var dto TableDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

// MaxNumber returns the highest table number, or 0 when there are no tables.
func (r *GormTableRepository) MaxNumber(ctx context.Context) (int, error) {
	var maxNumber int
	if err := r.db.WithContext(ctx).Model(&TableDTO{}).
		Select("COALESCE(MAX(table_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return 0, err
	}
	return maxNumber, nil
}

// Count returns the number of tables.
func (r *GormTableRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&TableDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Reserve marks a free table that seats members as held by phone.
func (r *GormTableRepository) Reserve(ctx context.Context, number int, phone string, members int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&TableDTO{}).
		Where("table_number = ? AND is_reserved = ? AND size >= ?", number, false, members).
		Updates(map[string]any{
			"is_reserved":       true,
			"reserved_by":       phone,
			"number_of_members": members,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Release clears the reservation of a table. Releasing a free table is a no-op.
func (r *GormTableRepository) Release(ctx context.Context, number int) error {
	return r.db.WithContext(ctx).Model(&TableDTO{}).
		Where("table_number = ?", number).
		Updates(released()).Error
}

// ReleaseHeldBy clears the reservation of a table only while phone holds it.
func (r *GormTableRepository) ReleaseHeldBy(ctx context.Context, number int, phone string) error {
	return r.db.WithContext(ctx).Model(&TableDTO{}).
		Where("table_number = ? AND is_reserved = ? AND reserved_by = ?", number, true, phone).
		Updates(released()).Error
}

// DeleteAndRenumber removes an unreserved table and closes the gap it leaves.
// Higher numbers are first moved to negative values and then flipped back, so
// the unique index never sees two tables with the same number. Open dine-in
// orders follow their table so completion still releases the right one.
func (r *GormTableRepository) DeleteAndRenumber(ctx context.Context, id kernel.UUID) (bool, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}

	db := r.db.WithContext(ctx)
	result := db.Where("id = ? AND is_reserved = ?", id.Bytes(), false).Delete(&TableDTO{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := db.Model(&TableDTO{}).
		Where("table_number > ?", existing.Number()).
		Update("table_number", gorm.Expr("-(table_number - 1)")).Error; err != nil {
		return false, err
	}

	if err := db.Model(&TableDTO{}).
		Where("table_number < ?", 0).
		Update("table_number", gorm.Expr("-table_number")).Error; err != nil {
		return false, err
	}

	if err := renumberOpenOrders(db, existing.Number()); err != nil {
		return false, err
	}

	return true, nil
}

// renumberOpenOrders shifts the table number of every order that is not done
// and sat above the deleted table. Done orders keep the number they were served at.
// The version bump makes a transition that loaded the old number retry.
func renumberOpenOrders(db *gorm.DB, deleted int) error {
	if err := db.Table(ordersTable).
		Where("table_number > ? AND status <> ?", deleted, order.Done.String()).
		Updates(map[string]any{
			"table_number": gorm.Expr("-(table_number - 1)"),
			"version":      gorm.Expr("version + 1"),
		}).Error; err != nil {
		return err
	}

	return db.Table(ordersTable).
		Where("table_number < ?", 0).
		Update("table_number", gorm.Expr("-table_number")).Error
}

func released() map[string]any {
	return map[string]any{
		"is_reserved":       false,
		"reserved_by":       "",
		"number_of_members": 0,
	}
}
