package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies manual status changes.
//
// Moving forward (pending -> processing -> done, skipping allowed) is applied;
// asking for the current status is a no-op; moving backward is a validation
// error. The first entry into done releases the table and the chef slot.
type UpdateOrderStatusCommandHandler struct {
	transitions orderTransitions
}

// NewUpdateOrderStatusCommandHandler creates a handler for manual status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory LifecycleUoWFactory,
	publisher ports.EventPublisher,
	clock func() time.Time,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		transitions: newOrderTransitions(uowFactory, publisher, clock),
	}
}

// Handle changes the status and returns the order as stored afterwards.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := h.transitions.apply(ctx, cmd.OrderID(), order.ChangedManually, func(o *order.Order) (order.Transition, error) {
		return o.ChangeStatus(cmd.Status())
	})
	return o, err
}
