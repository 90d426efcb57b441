package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
)

// DefaultPublishedLimit is how many recent events a MemoryEventBus keeps
// for Published.
const DefaultPublishedLimit = 1000

// MemoryEventBus dispatches events synchronously to in-process handlers.
// It keeps only the most recent events for inspection.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []events.Event
	limit     int
}

// MemoryOption configures a MemoryEventBus.
type MemoryOption func(*MemoryEventBus)

// WithPublishedLimit caps the retained events at n. Zero disables recording.
func WithPublishedLimit(n int) MemoryOption {
	return func(b *MemoryEventBus) {
		if n >= 0 {
			b.limit = n
		}
	}
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger, opts ...MemoryOption) *MemoryEventBus {
	b := &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]events.Event, 0),
		limit:     DefaultPublishedLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// Handler errors and panics are logged, never returned.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	b.mu.Lock()
	b.record(event)
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[event.Type()]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("panic recovered in event handler", "type", event.Type(), "panic", r)
				}
			}()
			if err := handler(ctx, event); err != nil {
				b.logger.Error("failed to process event", "type", event.Type(), "error", err)
			}
		}()
	}
	return nil
}

// record appends event and trims the history back to limit once it holds
// twice as many. Callers hold mu.
func (b *MemoryEventBus) record(event events.Event) {
	if b.limit == 0 {
		return
	}
	b.published = append(b.published, event)
	if len(b.published) >= 2*b.limit {
		b.published = append(make([]events.Event, 0, 2*b.limit), b.published[len(b.published)-b.limit:]...)
	}
}

// Published returns a copy of the most recent emitted events, oldest first.
// Useful in tests.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	recent := b.published
	if len(recent) > b.limit {
		recent = recent[len(recent)-b.limit:]
	}
	return append([]events.Event(nil), recent...)
}

// ClearPublished forgets previously emitted events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = make([]events.Event, 0)
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)
