// Package events carries domain events between modules without direct
// imports: an Event contract, handler adapters and the in-memory Bus.
// This is part of the platform layer and contains no business logic.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event. BaseEvent supplies EventID and
// OccurredAt; the concrete event supplies EventName.
type Event interface {
	// EventName returns the dotted event type, e.g. "offerte.intake.abandoned".
	EventName() string
	// EventID identifies this occurrence, for log correlation across handlers.
	EventID() uuid.UUID
	OccurredAt() time.Time
}

// BaseEvent is embedded by concrete events.
type BaseEvent struct {
	ID        uuid.UUID `json:"eventId"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) EventID() uuid.UUID { return e.ID }

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps a fresh event id and the current time.
func NewBaseEvent() BaseEvent {
	return NewBaseEventAt(time.Now())
}

// NewBaseEventAt stamps a fresh event id and the given time. Callers with an
// injected clock use it so the event time matches their own records.
func NewBaseEventAt(at time.Time) BaseEvent {
	return BaseEvent{ID: uuid.New(), Timestamp: at}
}

// Handler reacts to one published event.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes events to the handlers subscribed by event name.
type Bus interface {
	// Publish dispatches without waiting; handler errors are only logged.
	Publish(ctx context.Context, event Event)
	// PublishSync runs the handlers in subscription order and returns their
	// joined errors.
	PublishSync(ctx context.Context, event Event) error
	// Subscribe registers handler for eventName (the value of EventName()).
	Subscribe(eventName string, handler Handler)
}
