package messaging

import (
	"context"
	"errors"
	"sync"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/messaging"
)

// ErrBusClosed is returned when publishing to a closed bus
var ErrBusClosed = errors.New("event bus is closed")

// MemoryBus hands published entries to an in-process subscriber through a
// bounded channel. Publish blocks while the channel is full.
type MemoryBus struct {
	deliveries chan messaging.Delivery
	logger     coreport.Logger

	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryBus creates a bus buffering up to capacity deliveries
func NewMemoryBus(capacity int, logger coreport.Logger) *MemoryBus {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryBus{
		deliveries: make(chan messaging.Delivery, capacity),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Publish implements messaging.EventBus
func (b *MemoryBus) Publish(ctx context.Context, entry *entity.OutboxEntry) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.deliveries <- messaging.DeliveryFromEntry(entry):
		return nil
	case <-b.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe implements messaging.Subscriber. Handler errors are logged and
// the delivery is dropped; redelivery is the publisher's concern.
func (b *MemoryBus) Subscribe(ctx context.Context, handler messaging.EventHandler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.done:
			return nil
		case delivery := <-b.deliveries:
			if err := handler.Handle(ctx, delivery); err != nil {
				b.logger.Warn("Event handler failed", map[string]any{
					"sequence": delivery.Sequence,
					"topic":    delivery.Topic,
					"error":    err.Error(),
				})
			}
		}
	}
}

// Close implements messaging.EventBus
func (b *MemoryBus) Close() error {
	// signal first so blocked publishers release the read lock
	b.closeOnce.Do(func() { close(b.done) })

	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return nil
}
