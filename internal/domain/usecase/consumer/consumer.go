package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/messaging"
)

// Config sizes the dedupe window
type Config struct {
	DedupeCacheSize int
	DedupeTTL       time.Duration
}

// DefaultConfig returns the standard dedupe window
func DefaultConfig() Config {
	return Config{
		DedupeCacheSize: 10000,
		DedupeTTL:       time.Hour,
	}
}

// SpinEventConsumer handles SPIN_COMPLETED events from the bus.
// Delivery is at-least-once, so each outbox sequence is acted on only once
// within the dedupe window.
type SpinEventConsumer struct {
	logger  coreport.Logger
	metrics coreport.Metrics

	mu   sync.Mutex
	seen *expirable.LRU[uint64, struct{}]

	processed int
}

// NewSpinEventConsumer creates a consumer
func NewSpinEventConsumer(logger coreport.Logger, metrics coreport.Metrics, config Config) *SpinEventConsumer {
	defaults := DefaultConfig()
	if config.DedupeCacheSize <= 0 {
		config.DedupeCacheSize = defaults.DedupeCacheSize
	}
	if config.DedupeTTL <= 0 {
		config.DedupeTTL = defaults.DedupeTTL
	}

	return &SpinEventConsumer{
		logger:  logger,
		metrics: metrics,
		seen:    expirable.NewLRU[uint64, struct{}](config.DedupeCacheSize, nil, config.DedupeTTL),
	}
}

// Handle implements messaging.EventHandler
func (c *SpinEventConsumer) Handle(_ context.Context, delivery messaging.Delivery) error {
	event, err := entity.DecodeSpinCompletedEvent(delivery.Payload)
	if err != nil {
		c.logger.Error("Discarding undecodable spin event", map[string]any{
			"sequence": delivery.Sequence,
			"key":      delivery.Key,
			"error":    err.Error(),
		})
		return err
	}

	if !c.claim(delivery.Sequence) {
		c.metrics.IncEventsConsumed(true)
		c.logger.Debug("Duplicate spin event ignored", map[string]any{
			"sequence":  delivery.Sequence,
			"player_id": event.PlayerID,
		})
		return nil
	}
	c.metrics.IncEventsConsumed(false)

	c.logger.Info("Spin event received", map[string]any{
		"event":       "EVENT_RECEIVED",
		"sequence":    delivery.Sequence,
		"type":        event.EventType,
		"player_id":   event.PlayerID,
		"bet":         event.Bet,
		"win":         event.Win,
		"new_balance": event.NewBalance,
		"ts":          event.Timestamp.Format(time.RFC3339Nano),
	})
	return nil
}

// claim records the sequence and reports whether it was new
func (c *SpinEventConsumer) claim(sequence uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, seen := c.seen.Get(sequence); seen {
		return false
	}
	c.seen.Add(sequence, struct{}{})
	c.processed++
	return true
}

// Processed returns the number of distinct events handled
func (c *SpinEventConsumer) Processed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processed
}
