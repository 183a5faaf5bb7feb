// Package eventbus fans order events out to in-process consumers.
//
// Publishing never blocks the caller: every subscriber owns a buffered
// channel, and an event that does not fit into a full buffer is dropped for
// that subscriber and counted. Command handlers publish after their
// transaction commits, so a slow consumer can never hold a database lock.
package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"restaurant/internal/core/domain/model/order"
)

// DefaultBuffer is the subscriber buffer used when Subscribe gets a non-positive size.
const DefaultBuffer = 64

// Bus implements ports.EventPublisher.
type Bus struct {
	mu      sync.RWMutex
	subs    map[uint64]chan order.Event
	nextID  uint64
	closed  bool
	dropped atomic.Int64
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[uint64]chan order.Event),
		logger: logger.With("component", "event_bus"),
	}
}

// Publish delivers events to every subscriber without waiting.
func (b *Bus) Publish(ctx context.Context, events ...order.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, e := range events {
		for id, ch := range b.subs {
			select {
			case ch <- e:
			default:
				b.dropped.Add(1)
				b.logger.WarnContext(ctx, "subscriber buffer full, event dropped",
					"subscriber", id, "type", e.Type, "orderId", e.OrderID)
			}
		}
	}
}

// Subscribe registers a consumer. The returned cancel function unsubscribes
// and closes the channel; calling it more than once is safe.
func (b *Bus) Subscribe(buffer int) (<-chan order.Event, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan order.Event, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Dropped returns how many deliveries were lost to full buffers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
