package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"

	"github.com/shopspring/decimal"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDatabase connects to the configured dialect and migrates the schema.
func OpenDatabase(config Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(config.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		dsn, err := config.PostgresDSN()
		if err != nil {
			return nil, err
		}
		dialector = gorm_postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", config.DBDriver, err)
	}

	if config.DBDriver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite has a single writer; queue in the pool instead of failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// menuSeedEntry is one line of the menu seed file.
type menuSeedEntry struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Price                  decimal.Decimal `json:"price"`
	AveragePreparationTime int             `json:"averagePreparationTime"`
	Category               string          `json:"category"`
}

// SeedMenu upserts the menu items listed in the JSON file at path. Entries
// need a stable id so that re-seeding updates instead of duplicating.
func SeedMenu(ctx context.Context, db *gorm.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read menu seed: %w", err)
	}

	var entries []menuSeedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("decode menu seed: %w", err)
	}

	items := make([]*menu.Item, 0, len(entries))
	for i, entry := range entries {
		id, err := kernel.UUIDFromString(entry.ID)
		if err != nil {
			return 0, fmt.Errorf("menu seed entry %d: %w", i, err)
		}
		item, err := menu.NewItem(id, entry.Name, entry.Price, entry.AveragePreparationTime, entry.Category)
		if err != nil {
			return 0, fmt.Errorf("menu seed entry %d: %w", i, err)
		}
		items = append(items, item)
	}

	if err := menurepo.NewGormMenuCatalog(db).Save(ctx, items...); err != nil {
		return 0, fmt.Errorf("save menu seed: %w", err)
	}
	return len(items), nil
}
