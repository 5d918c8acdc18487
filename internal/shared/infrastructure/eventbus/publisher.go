// Package eventbus carries domain events out of the scheduling core so that
// surrounding surfaces (notifications, analytics) can subscribe without the
// core knowing about them.
package eventbus

import "context"

// Publisher sends serialized domain events keyed by routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}
