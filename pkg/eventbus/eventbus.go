// Package eventbus defines the publish/subscribe contract used to announce
// terminal transaction outcomes.
package eventbus

import (
	"context"

	"github.com/amirasaad/corebank/pkg/domain/events"
)

// HandlerFunc processes a single event.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Emit(ctx context.Context, event events.Event) error
	Register(eventType string, handler HandlerFunc)
}
