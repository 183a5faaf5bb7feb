// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MenuCatalogFactory provides read access to the menu catalog.
	MenuCatalogFactory interface {
		MenuCatalog() ports.MenuCatalog
	}

	// OrderUoW manages the order side of creation: catalog lookup and insert.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		MenuCatalogFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LifecycleUoW manages status transitions. Completion touches the order,
	// its table and its chef in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   _ = uow.OrderRepository().Update(ctx, o)
	//   _ = uow.LockTables(ctx, false)
	//   _ = uow.TableRepository().ReleaseHeldBy(ctx, number, phone)
	//   _ = uow.ChefRepository().DecrementLoad(ctx, chefID)
	//
	//   err = uow.Commit(ctx)
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		LockTables(ctx context.Context, exclusive bool) error
		ChefRepository() ports.ChefRepository
		TableRepository() ports.TableRepository
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}
)

// Resource interfaces are implemented by the application resources package.
type (
	// ChefAssigner hands out and gives back chef capacity.
	ChefAssigner interface {
		Assign(ctx context.Context) (kernel.UUID, error)
		Release(ctx context.Context, chefID kernel.UUID) error
	}

	// TableReserver reserves and releases tables by number.
	TableReserver interface {
		Reserve(ctx context.Context, number int, phone kernel.Phone, members int) error
		ReleaseHeldBy(ctx context.Context, number int, phone kernel.Phone) error
	}

	// ChefRoster maintains the set of chefs under the active chef cap.
	ChefRoster interface {
		AddChef(ctx context.Context, c *chef.Chef) error
		UpdateChef(ctx context.Context, id kernel.UUID, name string, status chef.Status) (*chef.Chef, error)
		RemoveChef(ctx context.Context, id kernel.UUID) error
	}

	// TableManager maintains tables and their numbering.
	TableManager interface {
		Create(ctx context.Context, size int, name string) (*table.Table, error)
		Update(ctx context.Context, id kernel.UUID, size *int, name *string) (*table.Table, error)
		Delete(ctx context.Context, id kernel.UUID) error
		ReserveByID(ctx context.Context, id kernel.UUID, phone kernel.Phone, members int) (*table.Table, error)
		ReleaseByID(ctx context.Context, id kernel.UUID) (*table.Table, error)
	}
)
