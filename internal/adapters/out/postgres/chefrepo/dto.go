// Package chefrepo persists chefs. The load counter is only ever changed by
// single conditional statements so concurrent assignments cannot lose updates.
package chefrepo

import (
	"time"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChefDTO represents the database structure for persisting chefs.
type ChefDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"size:100;not null"`
	Status            string    `gorm:"size:16;not null;index"`
	CurrentOrderCount int       `gorm:"not null;default:0"`
	CreatedAt         time.Time
}

// TableName specifies the database table name for chefs.
func (ChefDTO) TableName() string {
	return "chefs"
}

func fromDomain(c *chef.Chef) ChefDTO {
	return ChefDTO{
		ID:                c.ID().Bytes(),
		Name:              c.Name(),
		Status:            c.Status().String(),
		CurrentOrderCount: c.CurrentOrderCount(),
	}
}

func toDomain(dto ChefDTO) (*chef.Chef, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := chef.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return chef.RestoreChef(id, dto.Name, status, dto.CurrentOrderCount)
}
