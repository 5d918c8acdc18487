package eventbus

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Handler consumes a published event payload.
type Handler func(ctx context.Context, routingKey string, payload []byte) error

// InProcessBus is an in-memory event bus for local mode (no RabbitMQ).
// Events are delivered synchronously to registered handlers.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing-key pattern. A trailing ".*"
// matches any suffix.
func (b *InProcessBus) Subscribe(pattern string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[pattern] = append(b.handlers[pattern], handler)
}

// Publish dispatches the payload to all matching handlers. Handler errors are
// logged and do not fail the publish.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for pattern, handlers := range b.handlers {
		if !matches(pattern, routingKey) {
			continue
		}
		for _, handler := range handlers {
			if err := handler(ctx, routingKey, payload); err != nil {
				b.logger.Error("event handler failed",
					"routing_key", routingKey,
					"error", err,
				)
			}
		}
	}
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}

func matches(pattern, routingKey string) bool {
	if pattern == routingKey {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, ".*"); ok {
		return strings.HasPrefix(routingKey, prefix+".")
	}
	return false
}
