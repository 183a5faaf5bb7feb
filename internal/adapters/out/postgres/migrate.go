package postgres

import (
	"fmt"

	"restaurant/internal/adapters/out/postgres/chefrepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema of every persisted entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusChangeDTO{},
		&chefrepo.ChefDTO{},
		&tablerepo.TableDTO{},
		&menurepo.MenuItemDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
