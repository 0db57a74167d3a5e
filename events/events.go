package events

import (
	"context"
	"sync"

	"matchday/domain/entities"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePointsChange          EventType = "points_change"
	EventTypeUserCreated           EventType = "user_created"
	EventTypeMatchSettled          EventType = "match_settled"
	EventTypeRedemptionStateChange EventType = "redemption_state_change"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PointsChangeEvent represents a point balance change that occurred
type PointsChangeEvent struct {
	UserID          int64
	PointsBefore    int64
	PointsAfter     int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e PointsChangeEvent) Type() EventType {
	return EventTypePointsChange
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID         int64
	Username       string
	StartingPoints int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// MatchSettledEvent represents a match that was settled with a final score
type MatchSettledEvent struct {
	MatchID          int64
	HomeScore        int
	AwayScore        int
	Result           entities.MatchResult
	PredictionsTotal int
	PredictionsFailed int
}

func (e MatchSettledEvent) Type() EventType {
	return EventTypeMatchSettled
}

// RedemptionStateChangeEvent represents a gift redemption state transition
type RedemptionStateChangeEvent struct {
	RedemptionID int64
	UserID       int64
	GiftID       int64
	OldStatus    string
	NewStatus    string
}

func (e RedemptionStateChangeEvent) Type() EventType {
	return EventTypeRedemptionStateChange
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// Publisher emits events directly to the bus. Used for operations that run
// outside a database transaction and have nothing to defer.
type Publisher struct {
	bus *Bus
}

// NewPublisher creates a publisher bound to a bus
func NewPublisher(bus *Bus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish emits the event immediately
func (p *Publisher) Publish(event Event) error {
	p.bus.Emit(context.Background(), event)
	return nil
}

// TransactionalBus stashes events published during a unit of work and flushes
// them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus over the real bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues the event until Flush or Discard
func (b *TransactionalBus) Publish(event Event) error {
	b.pending = append(b.pending, event)
	return nil
}

// Flush emits all pending events. Called after a successful commit.
// Uses a background context so handlers outlive the request's context.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
