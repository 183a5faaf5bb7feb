package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// TickOrderCommandHandler applies one countdown step to one order.
//
// A processing order loses a minute of remaining time and completes when it
// reaches zero. Pending and done orders are returned unchanged, so clients
// that tick blindly cannot corrupt state.
type TickOrderCommandHandler struct {
	transitions orderTransitions
}

// NewTickOrderCommandHandler creates a handler for single order ticks.
func NewTickOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	publisher ports.EventPublisher,
	clock func() time.Time,
) TickOrderCommandHandler {
	return TickOrderCommandHandler{
		transitions: newOrderTransitions(uowFactory, publisher, clock),
	}
}

// Handle ticks the order and returns it as stored afterwards.
func (h TickOrderCommandHandler) Handle(ctx context.Context, cmd TickOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := h.transitions.apply(ctx, cmd.OrderID(), order.ChangedByCountdown, tick)
	return o, err
}

func tick(o *order.Order) (order.Transition, error) {
	return o.Tick(), nil
}
