package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrTickOrderCommandIsNotConstructed = errors.New(
	"TickOrderCommand must be created via NewTickOrderCommand constructor",
)

// TickOrderCommand asks for one countdown step of a single order.
type TickOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTickOrderCommand creates a countdown step request.
func NewTickOrderCommand(orderID kernel.UUID) (TickOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TickOrderCommand{}, err
	}

	return TickOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TickOrderCommand) Validate() error {
	return c.guard.Validate(ErrTickOrderCommandIsNotConstructed)
}

func (c TickOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
