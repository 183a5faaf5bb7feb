// Package rabbitmq forwards order events to a RabbitMQ fanout exchange so
// that services outside this process (notifications, reporting) can follow
// the order lifecycle.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the fanout exchange events are published to.
const Exchange = "restaurant.orders"

var ErrPublishNacked = errors.New("broker did not acknowledge the event")

// Channel is the subset of *amqp.Channel the forwarder needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Forwarder publishes each event as a persistent JSON message and waits for
// the broker's confirmation before taking the next one.
type Forwarder struct {
	ch             Channel
	confirms       chan amqp.Confirmation
	confirmTimeout time.Duration
	closeConn      func() error
	logger         *slog.Logger
}

// Dial connects to url, opens a channel and prepares a Forwarder on it.
func Dial(url string, logger *slog.Logger) (*Forwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	f, err := NewForwarder(ch, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	f.closeConn = conn.Close
	return f, nil
}

// NewForwarder declares the exchange and puts ch into confirm mode.
func NewForwarder(ch Channel, logger *slog.Logger) (*Forwarder, error) {
	if err := ch.ExchangeDeclare(Exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	return &Forwarder{
		ch:             ch,
		confirms:       ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		confirmTimeout: 5 * time.Second,
		logger:         logger.With("component", "rabbitmq_forwarder"),
	}, nil
}

// Forward publishes one event and waits for its confirmation.
func (f *Forwarder) Forward(ctx context.Context, e order.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.confirmTimeout)
	defer cancel()

	err = f.ch.PublishWithContext(ctx, Exchange, string(e.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.OccurredAt,
		Type:         string(e.Type),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}

	select {
	case confirm, ok := <-f.confirms:
		if !ok {
			return errors.New("confirmation channel closed")
		}
		if !confirm.Ack {
			return fmt.Errorf("%s for order %s: %w", e.Type, e.OrderID, ErrPublishNacked)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for confirmation: %w", ctx.Err())
	}
}

// Run forwards events until the channel closes or ctx is done. Failed events
// are logged and skipped.
func (f *Forwarder) Run(ctx context.Context, events <-chan order.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := f.Forward(ctx, e); err != nil {
				f.logger.ErrorContext(ctx, "failed to forward event",
					"type", e.Type, "orderId", e.OrderID, "error", err)
			}
		}
	}
}

// Close closes the channel and, when the forwarder was dialed, the connection.
func (f *Forwarder) Close() error {
	err := f.ch.Close()
	if f.closeConn != nil {
		err = errors.Join(err, f.closeConn())
	}
	return err
}
