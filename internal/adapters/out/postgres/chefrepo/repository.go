package chefrepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/dberr"
	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChefRepository implements ports.ChefRepository using GORM.
type GormChefRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChefRepository creates a new GORM chef repository.
func NewGormChefRepository(db *gorm.DB, tracker aggregateTracker) *GormChefRepository {
	return &GormChefRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new chef to the database.
func (r *GormChefRepository) Add(ctx context.Context, aggregate *chef.Chef) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "chef")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the name and status of an existing chef.
func (r *GormChefRepository) Update(ctx context.Context, aggregate *chef.Chef) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ChefDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":   dto.Name,
		"status": dto.Status,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("chef", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a chef by ID.
func (r *GormChefRepository) Get(ctx context.Context, id kernel.UUID) (*chef.Chef, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChefDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chef", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActive retrieves all active chefs, oldest first.
func (r *GormChefRepository) GetActive(ctx context.Context) ([]*chef.Chef, error) {
	var dtos []ChefDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", chef.Active.String()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	chefs := make([]*chef.Chef, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		chefs = append(chefs, c)
	}

	return chefs, nil
}

// CountActive counts active chefs. When except is set that chef is left out,
// which lets an update check the cap as if the chef were not active yet.
func (r *GormChefRepository) CountActive(ctx context.Context, except *kernel.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&ChefDTO{}).Where("status = ?", chef.Active.String())
	if except != nil {
		query = query.Where("id <> ?", except.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementLoad adds one order to an active chef whose load is still observed.
func (r *GormChefRepository) IncrementLoad(ctx context.Context, id kernel.UUID, observed int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&ChefDTO{}).
		Where("id = ? AND current_order_count = ? AND status = ?", id.Bytes(), observed, chef.Active.String()).
		Update("current_order_count", gorm.Expr("current_order_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// DecrementLoad removes one order from a chef, clamped at zero. Unknown ids are ignored.
func (r *GormChefRepository) DecrementLoad(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Model(&ChefDTO{}).
		Where("id = ?", id.Bytes()).
		Update("current_order_count",
			gorm.Expr("CASE WHEN current_order_count > 0 THEN current_order_count - 1 ELSE 0 END")).
		Error
}

// DeleteIdle removes a chef that has no orders in progress.
func (r *GormChefRepository) DeleteIdle(ctx context.Context, id kernel.UUID) (bool, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND current_order_count = ?", id.Bytes(), 0).
		Delete(&ChefDTO{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
