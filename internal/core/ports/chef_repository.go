package ports

import (
	"context"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
)

// ChefRepository defines the persistence contract for chefs. The load counter
// is never written from a snapshot: it only changes through IncrementLoad and
// DecrementLoad, each a single conditional statement.
type ChefRepository interface {
	// Add persists a new chef.
	Add(ctx context.Context, aggregate *chef.Chef) error

	// Update persists the name and status of a chef (not its load).
	Update(ctx context.Context, aggregate *chef.Chef) error

	// Get retrieves a chef by id.
	Get(ctx context.Context, id kernel.UUID) (*chef.Chef, error)

	// GetActive lists active chefs with their current load.
	GetActive(ctx context.Context) ([]*chef.Chef, error)

	// CountActive counts active chefs, optionally ignoring one of them.
	CountActive(ctx context.Context, except *kernel.UUID) (int64, error)

	// IncrementLoad adds one order to the chef if it is still active and its
	// load still equals observed. It reports whether the row was updated.
	IncrementLoad(ctx context.Context, id kernel.UUID, observed int) (bool, error)

	// DecrementLoad removes one order from the chef, never going below 0.
	DecrementLoad(ctx context.Context, id kernel.UUID) error

	// DeleteIdle removes the chef if its load is 0. It reports whether a row was removed.
	DeleteIdle(ctx context.Context, id kernel.UUID) (bool, error)
}
