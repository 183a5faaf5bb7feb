package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained before Begin run their statements immediately; those
// obtained after Begin run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// LockTables serializes table numbering against reservations across
	// service instances for the rest of the transaction. Reservations take it
	// shared, creation and deletion exclusive.
	LockTables(ctx context.Context, exclusive bool) error

	// LockChefRoster serializes changes to the set of active chefs for the
	// rest of the transaction.
	LockChefRoster(ctx context.Context) error

	OrderRepository() OrderRepository
	ChefRepository() ChefRepository
	TableRepository() TableRepository
	MenuCatalog() MenuCatalog
}
