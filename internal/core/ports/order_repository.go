// Package ports defines the contracts between the restaurant domain and its
// infrastructure: repositories, the unit of work and the event publisher.
package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Its number must be unique.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status and countdown of an order, guarded by the
	// version the aggregate was loaded with. A concurrent writer that got there
	// first makes Update fail with a ConflictError; the caller reloads and retries.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Unknown ids yield an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetIDsInStatus lists the ids of all orders currently in status, oldest first.
	GetIDsInStatus(ctx context.Context, status order.Status) ([]kernel.UUID, error)

	// AddStatusChange appends to the audit trail of an order.
	AddStatusChange(ctx context.Context, change order.StatusChange) error
}
