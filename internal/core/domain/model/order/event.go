package order

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// EventType names what happened to an order.
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
	EventCompleted     EventType = "order.completed"
)

// ChangeSource tells who caused a status change.
type ChangeSource string

const (
	ChangedManually    ChangeSource = "manual"
	ChangedByCountdown ChangeSource = "countdown"
)

// Event is published after the transaction that caused it commits.
// Consumers (kitchen display, message broker) receive it as JSON.
type Event struct {
	Type           EventType `json:"type"`
	OrderID        string    `json:"orderId"`
	Number         string    `json:"orderNumber"`
	OrderType      string    `json:"orderType"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	ProcessingTime int       `json:"processingTime"`
	TableNumber    int       `json:"tableNumber,omitempty"`
	ChefID         string    `json:"chefId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// StatusChange is the audit record written with every status move.
type StatusChange struct {
	OrderID   kernel.UUID
	From      Status
	To        Status
	ChangedBy ChangeSource
	ChangedAt time.Time
}

// CreatedEvent describes a freshly persisted order.
func CreatedEvent(o *Order, at time.Time) Event {
	e := snapshot(o, at)
	e.Type = EventCreated
	return e
}

// TransitionEvents describes a persisted transition: one status-changed event
// when the status moved, plus a completed event on the first entry into Done.
// Countdown-only transitions produce no events.
func TransitionEvents(o *Order, tr Transition, at time.Time) []Event {
	if !tr.StatusChanged() {
		return nil
	}

	changed := snapshot(o, at)
	changed.Type = EventStatusChanged
	changed.PreviousStatus = tr.From.String()
	events := []Event{changed}

	if tr.Completed() {
		completed := snapshot(o, at)
		completed.Type = EventCompleted
		completed.PreviousStatus = tr.From.String()
		events = append(events, completed)
	}
	return events
}

// NewStatusChange builds the audit record of tr, or false when the status did not move.
func NewStatusChange(o *Order, tr Transition, source ChangeSource, at time.Time) (StatusChange, bool) {
	if !tr.StatusChanged() {
		return StatusChange{}, false
	}
	return StatusChange{
		OrderID:   o.ID(),
		From:      tr.From,
		To:        tr.To,
		ChangedBy: source,
		ChangedAt: at.UTC(),
	}, true
}

func snapshot(o *Order, at time.Time) Event {
	e := Event{
		OrderID:        o.ID().String(),
		Number:         o.Number(),
		OrderType:      o.Type().String(),
		Status:         o.Status().String(),
		ProcessingTime: o.ProcessingTime(),
		OccurredAt:     at.UTC(),
	}
	if n, ok := o.TableNumber(); ok {
		e.TableNumber = n
	}
	if chefID := o.ChefID(); chefID != nil {
		e.ChefID = chefID.String()
	}
	return e
}
