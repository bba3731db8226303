// Package eventbus provides a minimal in-process publish/subscribe bus for
// domain events. Handlers run synchronously on the publisher's goroutine.
package eventbus

import (
	"context"
	"sync"

	"github.com/onramptee/openbank/pkg/domain/events"
)

// Bus is the contract for publishing and subscribing to domain events.
type Bus interface {
	Publish(ctx context.Context, event events.Event) error
	Subscribe(eventType string, handler func(context.Context, events.Event))
}

// SimpleBus is an in-memory Bus safe for concurrent use.
type SimpleBus struct {
	mu       sync.RWMutex
	handlers map[string][]func(context.Context, events.Event)
}

// NewSimpleBus creates an empty in-memory bus.
func NewSimpleBus() *SimpleBus {
	return &SimpleBus{handlers: make(map[string][]func(context.Context, events.Event))}
}

// Publish delivers the event to every handler subscribed to its type.
func (b *SimpleBus) Publish(ctx context.Context, event events.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers[event.Type()] {
		handler(ctx, event)
	}
	return nil
}

// Subscribe registers a handler for an event type.
func (b *SimpleBus) Subscribe(eventType string, handler func(context.Context, events.Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

var _ Bus = (*SimpleBus)(nil)
