// Package tablerepo persists restaurant tables. Reservation changes are single
// conditional statements; numbering changes happen under the caller's lock.
package tablerepo

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO represents the database structure for persisting tables.
type TableDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableNumber     int       `gorm:"not null;uniqueIndex"`
	Size            int       `gorm:"not null"`
	Name            string    `gorm:"size:50"`
	IsReserved      bool      `gorm:"not null;default:false;index"`
	ReservedBy      string    `gorm:"size:20"`
	NumberOfMembers int       `gorm:"not null;default:0"`
}

// TableName specifies the database table name. "tables" clashes with
// information_schema views in several dialects.
func (TableDTO) TableName() string {
	return "restaurant_tables"
}

func fromDomain(t *table.Table) TableDTO {
	return TableDTO{
		ID:              t.ID().Bytes(),
		TableNumber:     t.Number(),
		Size:            t.Size(),
		Name:            t.Name(),
		IsReserved:      t.IsReserved(),
		ReservedBy:      t.ReservedBy(),
		NumberOfMembers: t.NumberOfMembers(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return table.RestoreTable(id, dto.TableNumber, dto.Size, dto.Name, dto.IsReserved, dto.ReservedBy, dto.NumberOfMembers)
}
