// Package sqlitetest opens migrated in-memory SQLite databases for tests that
// exercise the gorm adapters without a PostgreSQL container.
package sqlitetest

import (
	"fmt"
	"testing"

	"restaurant/internal/adapters/out/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh, migrated database private to t.
//
// The pool is limited to one connection: SQLite serializes writers anyway, and a
// single connection turns lock contention between goroutines into waiting. A
// test must therefore not use the root connection while it holds a transaction
// open in the same goroutine.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}
