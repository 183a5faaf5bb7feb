package ports

import (
	"context"

	"restaurant/internal/core/domain/model/order"
)

// EventPublisher delivers order events to in-process subscribers. Publish is
// called after commit and never blocks on slow consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event)
}
