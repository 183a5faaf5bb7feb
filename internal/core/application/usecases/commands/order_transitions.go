package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// DefaultTransitionAttempts bounds how often a transition is re-applied after
// losing a version race to another writer of the same order.
const DefaultTransitionAttempts = 5

// transitionFunc changes an order loaded inside the transition transaction.
type transitionFunc func(o *order.Order) (order.Transition, error)

// orderTransitions is the single write path for order status and countdown.
// Manual updates, HTTP ticks and the scheduled ticker all go through it.
//
// The order row is written first with a version guard. A writer that loses
// the race gets a ConflictError, rolls back and re-applies its change to a
// fresh copy. Completion side effects (table release, chef decrement) run in
// the same transaction after the guarded write, so they happen exactly once
// per order whatever the interleaving.
type orderTransitions struct {
	uowFactory LifecycleUoWFactory
	publisher  ports.EventPublisher
	clock      func() time.Time
	attempts   int
}

func newOrderTransitions(uowFactory LifecycleUoWFactory, publisher ports.EventPublisher, clock func() time.Time) orderTransitions {
	return orderTransitions{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		attempts:   DefaultTransitionAttempts,
	}
}

func (t orderTransitions) apply(
	ctx context.Context,
	id kernel.UUID,
	source order.ChangeSource,
	fn transitionFunc,
) (*order.Order, order.Transition, error) {
	var lastErr error
	for range t.attempts {
		if err := ctx.Err(); err != nil {
			return nil, order.Transition{}, err
		}

		o, tr, err := t.applyOnce(ctx, id, source, fn)
		if err == nil {
			return o, tr, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, order.Transition{}, err
		}
		lastErr = err
	}

	return nil, order.Transition{}, fmt.Errorf("order %s: %w", id, lastErr)
}

func (t orderTransitions) applyOnce(
	ctx context.Context,
	id kernel.UUID,
	source order.ChangeSource,
	fn transitionFunc,
) (*order.Order, order.Transition, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Transition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, order.Transition{}, err
	}

	tr, err := fn(o)
	if err != nil {
		return nil, order.Transition{}, err
	}
	if !tr.Mutated() {
		return o, tr, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, order.Transition{}, err
	}

	now := t.clock().UTC()
	if change, ok := order.NewStatusChange(o, tr, source, now); ok {
		if err = orderRepo.AddStatusChange(ctx, change); err != nil {
			return nil, order.Transition{}, err
		}
	}

	if tr.Completed() {
		if err = releaseResources(ctx, uow, o); err != nil {
			return nil, order.Transition{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.Transition{}, err
	}

	if events := order.TransitionEvents(o, tr, now); len(events) > 0 {
		t.publisher.Publish(ctx, events...)
	}
	return o, tr, nil
}

// releaseResources frees the table and the chef slot of a completed order.
// The table is only released while the order's customer still holds it.
func releaseResources(ctx context.Context, uow LifecycleUoW, o *order.Order) error {
	if number, ok := o.TableNumber(); ok {
		if err := uow.LockTables(ctx, false); err != nil {
			return fmt.Errorf("lock tables: %w", err)
		}
		if err := uow.TableRepository().ReleaseHeldBy(ctx, number, o.CustomerPhone().String()); err != nil {
			return fmt.Errorf("release table %d: %w", number, err)
		}
	}

	if chefID := o.ChefID(); chefID != nil {
		if err := uow.ChefRepository().DecrementLoad(ctx, *chefID); err != nil {
			return fmt.Errorf("release chef %s: %w", chefID, err)
		}
	}

	return nil
}
