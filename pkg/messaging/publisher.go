// Package messaging defines the event publishing contract for the storefront.
package messaging

import (
	"context"
)

const (
	OrdersCreatedSubject   = "orders.created"
	OrdersCancelledSubject = "orders.cancelled"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards events. Used when NATS is disabled in configuration.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, _ Event) error {
	return nil
}
