// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across order, chef, table and menu repositories
//   - Aggregate tracking for post-commit processing
//   - Cross-instance serialization through PostgreSQL advisory locks
//   - Repository factory pattern for consistent database connections
//
// Usage Patterns:
//
// Completing an order in one transaction:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.LockTables(ctx, false); err != nil {
//	    return err
//	}
//	if err := uow.TableRepository().ReleaseHeldBy(ctx, number, phone); err != nil {
//	    return err
//	}
//	if err := uow.ChefRepository().DecrementLoad(ctx, chefID); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin run every statement on their own, which is
// what the single-statement compare-and-swap operations (chef load, table
// reservation) want.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Advisory locks are released automatically on commit or rollback
package postgres

import (
	"context"

	"restaurant/internal/adapters/out/postgres/chefrepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// Advisory lock keys. Any two distinct int64 values work; these spell "TBLS"
// and "CHEF" in ASCII so they are recognizable in pg_locks.
const (
	tablesLockKey     int64 = 0x54424c53
	chefRosterLockKey int64 = 0x43484546
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations. Implements the Unit of Work pattern using GORM's
// transaction capabilities to ensure data consistency and proper rollback handling.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists, so a deferred Rollback after a
// successful Commit is harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// LockTables takes the table advisory lock for the rest of the transaction:
// shared for reservations, exclusive for creation, resizing and deletion.
// Other dialects rely on their own transaction serialization and skip it.
func (uow *GormUnitOfWork) LockTables(ctx context.Context, exclusive bool) error {
	return uow.advisoryLock(ctx, tablesLockKey, exclusive)
}

// LockChefRoster takes the exclusive chef roster advisory lock for the rest of
// the transaction so the active chef cap holds across service instances.
func (uow *GormUnitOfWork) LockChefRoster(ctx context.Context) error {
	return uow.advisoryLock(ctx, chefRosterLockKey, true)
}

func (uow *GormUnitOfWork) advisoryLock(ctx context.Context, key int64, exclusive bool) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if uow.tx.Dialector.Name() != "postgres" {
		return nil
	}

	fn := "pg_advisory_xact_lock_shared"
	if exclusive {
		fn = "pg_advisory_xact_lock"
	}

	return uow.tx.WithContext(ctx).Exec("SELECT "+fn+"(?)", key).Error
}

// OrderRepository provides access to order persistence operations within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ChefRepository provides access to chef persistence operations within the unit of work.
func (uow *GormUnitOfWork) ChefRepository() ports.ChefRepository {
	return chefrepo.NewGormChefRepository(uow.conn(), uow)
}

// TableRepository provides access to table persistence operations within the unit of work.
func (uow *GormUnitOfWork) TableRepository() ports.TableRepository {
	return tablerepo.NewGormTableRepository(uow.conn(), uow)
}

// MenuCatalog provides read access to the menu catalog.
func (uow *GormUnitOfWork) MenuCatalog() ports.MenuCatalog {
	return menurepo.NewGormMenuCatalog(uow.conn())
}

// conn returns the transaction when one is active, otherwise the main connection.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since the last Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []any {
	aggregates := make([]any, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		aggregates = append(aggregates, tracked.Aggregate)
	}
	return aggregates
}
