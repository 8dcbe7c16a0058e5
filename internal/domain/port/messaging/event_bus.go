package messaging

import (
	"context"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
)

// Delivery is one event as seen by a consumer
type Delivery struct {
	Sequence uint64
	Topic    string
	Key      string
	Payload  []byte
}

// DeliveryFromEntry builds the consumer view of an outbox entry
func DeliveryFromEntry(entry *entity.OutboxEntry) Delivery {
	return Delivery{
		Sequence: entry.Sequence,
		Topic:    entry.Topic,
		Key:      entry.Key,
		Payload:  entry.Payload,
	}
}

// EventBus publishes outbox entries to an external transport.
// Publish returning nil means the transport accepted the entry.
type EventBus interface {
	Publish(ctx context.Context, entry *entity.OutboxEntry) error
	Close() error
}

// EventHandler processes a delivered event
type EventHandler interface {
	Handle(ctx context.Context, delivery Delivery) error
}

// Subscriber feeds deliveries from a transport to a handler until ctx is cancelled
type Subscriber interface {
	Subscribe(ctx context.Context, handler EventHandler) error
}
