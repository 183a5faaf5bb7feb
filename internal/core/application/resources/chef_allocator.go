package resources

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"
)

const (
	// DefaultAssignAttempts bounds how often Assign retries after losing a race.
	DefaultAssignAttempts = 8

	// DefaultAssignBackoff is the base delay between Assign attempts.
	DefaultAssignBackoff = 5 * time.Millisecond
)

// ChefAllocator hands out chef capacity and maintains the chef roster.
//
// Assignment is optimistic: it picks the least-loaded active chef from a
// snapshot and commits the pick with a conditional increment keyed on the
// observed load. A lost race retries with a fresh snapshot.
//
// Roster changes (add, update, remove) are serialized by an in-process mutex
// and, inside their transaction, by the roster lock of the unit of work, so the
// active chef cap holds across service instances.
type ChefAllocator struct {
	uowFactory ChefUoWFactory
	selector   services.ChefSelector
	attempts   int
	backoff    time.Duration
	logger     *slog.Logger

	rosterMu sync.Mutex
}

// NewChefAllocator creates an allocator with the default retry policy.
func NewChefAllocator(uowFactory ChefUoWFactory, selector services.ChefSelector, logger *slog.Logger) *ChefAllocator {
	return NewChefAllocatorWithRetry(uowFactory, selector, logger, DefaultAssignAttempts, DefaultAssignBackoff)
}

// NewChefAllocatorWithRetry creates an allocator with an explicit retry policy.
func NewChefAllocatorWithRetry(
	uowFactory ChefUoWFactory,
	selector services.ChefSelector,
	logger *slog.Logger,
	attempts int,
	backoff time.Duration,
) *ChefAllocator {
	if attempts < 1 {
		attempts = 1
	}
	return &ChefAllocator{
		uowFactory: uowFactory,
		selector:   selector,
		attempts:   attempts,
		backoff:    backoff,
		logger:     logger.With("component", "ChefAllocator"),
	}
}

// Assign reserves one order slot on the least-loaded active chef.
//
// Returns:
//   - the chef id whose load was incremented
//   - a CapacityError when no chef is active
//   - a ConflictError when every attempt lost its race
//   - ctx.Err() when the context ends while retrying
func (a *ChefAllocator) Assign(ctx context.Context) (kernel.UUID, error) {
	repo := a.uowFactory.Create().ChefRepository()

	for attempt := range a.attempts {
		if err := ctx.Err(); err != nil {
			return kernel.UUID{}, err
		}

		chefs, err := repo.GetActive(ctx)
		if err != nil {
			return kernel.UUID{}, fmt.Errorf("load active chefs: %w", err)
		}

		picked, err := a.selector.Select(chefs)
		if err != nil {
			return kernel.UUID{}, err
		}

		ok, err := repo.IncrementLoad(ctx, picked.ID(), picked.CurrentOrderCount())
		if err != nil {
			return kernel.UUID{}, fmt.Errorf("increment chef load: %w", err)
		}
		if ok {
			return picked.ID(), nil
		}

		a.logger.DebugContext(ctx, "chef load changed concurrently, retrying",
			"chefId", picked.ID().String(), "attempt", attempt+1)

		if attempt+1 < a.attempts {
			if err := sleep(ctx, jitteredBackoff(a.backoff, attempt)); err != nil {
				return kernel.UUID{}, err
			}
		}
	}

	return kernel.UUID{}, errs.NewConflictError("chef", "load kept changing concurrently")
}

// Release gives back one order slot of chefID. The load never goes below zero.
func (a *ChefAllocator) Release(ctx context.Context, chefID kernel.UUID) error {
	return a.uowFactory.Create().ChefRepository().DecrementLoad(ctx, chefID)
}

// AddChef puts a new chef on the roster.
// An active chef beyond chef.MaxActiveChefs is rejected with a ConflictError.
func (a *ChefAllocator) AddChef(ctx context.Context, c *chef.Chef) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return a.withRoster(ctx, func(uow ChefUoW) error {
		if c.IsActive() {
			if err := checkActiveCap(ctx, uow, nil); err != nil {
				return err
			}
		}
		return uow.ChefRepository().Add(ctx, c)
	})
}

// UpdateChef renames a chef and sets its status. Activating a chef is subject
// to the same cap as adding one. The load is left untouched.
func (a *ChefAllocator) UpdateChef(ctx context.Context, id kernel.UUID, name string, status chef.Status) (*chef.Chef, error) {
	var updated *chef.Chef
	err := a.withRoster(ctx, func(uow ChefUoW) error {
		repo := uow.ChefRepository()

		c, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		wasActive := c.IsActive()
		if err := c.Rename(name); err != nil {
			return err
		}
		if err := c.ChangeStatus(status); err != nil {
			return err
		}

		if c.IsActive() && !wasActive {
			except := c.ID()
			if err := checkActiveCap(ctx, uow, &except); err != nil {
				return err
			}
		}

		if err := repo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveChef deletes a chef that has no orders in progress.
func (a *ChefAllocator) RemoveChef(ctx context.Context, id kernel.UUID) error {
	return a.withRoster(ctx, func(uow ChefUoW) error {
		deleted, err := uow.ChefRepository().DeleteIdle(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errs.NewConflictError("chef", fmt.Sprintf("%s still has orders in progress", id))
		}
		return nil
	})
}

func (a *ChefAllocator) withRoster(ctx context.Context, fn func(uow ChefUoW) error) error {
	a.rosterMu.Lock()
	defer a.rosterMu.Unlock()

	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.LockChefRoster(ctx); err != nil {
		return fmt.Errorf("lock chef roster: %w", err)
	}

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func checkActiveCap(ctx context.Context, uow ChefUoW, except *kernel.UUID) error {
	active, err := uow.ChefRepository().CountActive(ctx, except)
	if err != nil {
		return err
	}
	if active >= chef.MaxActiveChefs {
		return errs.NewConflictError("chef", fmt.Sprintf("roster already has %d active chefs", chef.MaxActiveChefs))
	}
	return nil
}
