package events

import (
	"context"
	"sync"
	"time"

	"tpbot/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange     EventType = "balance_change"
	EventTypeUserCreated       EventType = "user_created"
	EventTypeChallengeResolved EventType = "challenge_resolved"
	EventTypeChallengeExpired  EventType = "challenge_expired"
)

// AllEventTypes lists every event type the economy emits
var AllEventTypes = []EventType{
	EventTypeBalanceChange,
	EventTypeUserCreated,
	EventTypeChallengeResolved,
	EventTypeChallengeExpired,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	AccountID       int64                  `json:"account_id"`
	Currency        models.Currency        `json:"currency"`
	OldBalance      int64                  `json:"old_balance"`
	NewBalance      int64                  `json:"new_balance"`
	TransactionType models.TransactionType `json:"transaction_type"`
	ChangeAmount    int64                  `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new account registration
type UserCreatedEvent struct {
	AccountID   int64     `json:"account_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// ChallengeResolvedEvent is emitted when the initiator answers a challenge
type ChallengeResolvedEvent struct {
	ChallengeID string               `json:"challenge_id"`
	Kind        models.ChallengeKind `json:"kind"`
	AccountID   int64                `json:"account_id"`
	Correct     bool                 `json:"correct"`
	Reward      int64                `json:"reward"`
	Currency    models.Currency      `json:"currency"`
}

func (e ChallengeResolvedEvent) Type() EventType {
	return EventTypeChallengeResolved
}

// ChallengeExpiredEvent is emitted when a challenge deadline passes unanswered
type ChallengeExpiredEvent struct {
	ChallengeID string               `json:"challenge_id"`
	Kind        models.ChallengeKind `json:"kind"`
	AccountID   int64                `json:"account_id"`
}

func (e ChallengeExpiredEvent) Type() EventType {
	return EventTypeChallengeExpired
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus fans events out to subscribers, each handler running on its own goroutine
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
	}).Debug("Subscribed event handler")
}

// Emit dispatches an event to every handler subscribed to its type without waiting for them
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// Publish emits immediately, detached from any caller context
func (b *Bus) Publish(event Event) {
	b.Emit(context.Background(), event)
}

// TransactionalBus buffers events until the write that produced them is durable.
// It is not safe for concurrent use; create one per operation.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a buffer in front of the given bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Pending returns the number of queued events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// Flush emits all queued events in order, called once the write has been persisted
func (b *TransactionalBus) Flush() {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending events")

	// handlers outlive the operation that produced the events
	ctx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// Discard drops queued events after a failed write
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
