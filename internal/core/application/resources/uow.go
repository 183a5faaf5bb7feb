// Package resources arbitrates the two finite resources orders compete for:
// chef capacity and physical tables. Every change to shared state is a single
// conditional statement or runs under the resource lock, so concurrent
// requests never lose updates.
package resources

import (
	"context"

	"restaurant/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ChefUoW gives the allocator chef persistence and the roster lock.
	ChefUoW interface {
		TxManager
		LockChefRoster(ctx context.Context) error
		ChefRepository() ports.ChefRepository
	}

	// ChefUoWFactory creates new chef unit of work instances.
	ChefUoWFactory interface {
		Create() ChefUoW
	}

	// TableUoW gives the reservation service table persistence and the table lock.
	TableUoW interface {
		TxManager
		LockTables(ctx context.Context, exclusive bool) error
		TableRepository() ports.TableRepository
	}

	// TableUoWFactory creates new table unit of work instances.
	TableUoWFactory interface {
		Create() TableUoW
	}
)
