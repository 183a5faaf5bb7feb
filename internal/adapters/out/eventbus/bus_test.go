package eventbus_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"restaurant/internal/adapters/out/eventbus"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

	_ ports.EventPublisher = (*eventbus.Bus)(nil)
)

func event(t order.EventType, id string) order.Event {
	return order.Event{Type: t, OrderID: id}
}

func TestBus_FanOut(t *testing.T) {
	bus := eventbus.New(discardLogger)
	first, cancelFirst := bus.Subscribe(4)
	second, cancelSecond := bus.Subscribe(4)
	defer cancelFirst()
	defer cancelSecond()

	bus.Publish(t.Context(), event(order.EventCreated, "a"), event(order.EventCompleted, "a"))

	for _, ch := range []<-chan order.Event{first, second} {
		require.Equal(t, order.EventCreated, (<-ch).Type)
		require.Equal(t, order.EventCompleted, (<-ch).Type)
	}
	assert.Zero(t, bus.Dropped())
}

func TestBus_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	bus := eventbus.New(discardLogger)
	slow, cancel := bus.Subscribe(1)
	defer cancel()

	bus.Publish(t.Context(), event(order.EventCreated, "a"), event(order.EventCreated, "b"), event(order.EventCreated, "c"))

	assert.Equal(t, "a", (<-slow).OrderID)
	assert.Equal(t, int64(2), bus.Dropped())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := eventbus.New(discardLogger)
	ch, cancel := bus.Subscribe(1)

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	bus.Publish(t.Context(), event(order.EventCreated, "a"))
	assert.Zero(t, bus.Dropped())
}

func TestBus_Close(t *testing.T) {
	bus := eventbus.New(discardLogger)
	ch, cancel := bus.Subscribe(1)

	bus.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	late, _ := bus.Subscribe(1)
	_, open = <-late
	assert.False(t, open)

	assert.NotPanics(t, func() { bus.Publish(t.Context(), event(order.EventCreated, "a")) })
}

func TestBus_ConcurrentPublishAndSubscribe(t *testing.T) {
	bus := eventbus.New(discardLogger)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 50 {
				bus.Publish(t.Context(), event(order.EventStatusChanged, "x"))
			}
		}()
		go func() {
			defer wg.Done()
			ch, cancel := bus.Subscribe(8)
			for range 3 {
				select {
				case <-ch:
				default:
				}
			}
			cancel()
		}()
	}
	wg.Wait()
	bus.Close()
}
