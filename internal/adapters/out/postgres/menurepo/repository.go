// Package menurepo reads the menu catalog orders are priced from.
package menurepo

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuItemDTO represents a catalog entry row.
type MenuItemDTO struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                   string          `gorm:"size:100;not null"`
	Price                  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AveragePreparationTime int             `gorm:"not null;default:0"`
	Category               string          `gorm:"size:50;index"`
}

// TableName specifies the database table name for catalog entries.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormMenuCatalog implements ports.MenuCatalog using GORM.
type GormMenuCatalog struct {
	db *gorm.DB
}

// NewGormMenuCatalog creates a new GORM menu catalog.
func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// GetByIDs returns the catalog entries found among ids. Missing ids are simply
// absent from the result; the caller decides whether that is an error.
func (c *GormMenuCatalog) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error) {
	if len(ids) == 0 {
		return []*menu.Item{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		item, err := menu.NewItem(id, dto.Name, dto.Price, dto.AveragePreparationTime, dto.Category)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Save upserts catalog entries. It loads a seed catalog at startup and in tests;
// the HTTP API never writes the menu.
func (c *GormMenuCatalog) Save(ctx context.Context, items ...*menu.Item) error {
	if len(items) == 0 {
		return nil
	}

	dtos := make([]MenuItemDTO, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, MenuItemDTO{
			ID:                     item.ID().Bytes(),
			Name:                   item.Name(),
			Price:                  item.Price(),
			AveragePreparationTime: item.AveragePreparationTime(),
			Category:               item.Category(),
		})
	}

	return c.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dtos).Error
}
