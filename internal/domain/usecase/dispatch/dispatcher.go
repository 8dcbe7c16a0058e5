package dispatch

import (
	"context"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/messaging"
)

// Outbox is the part of the event outbox the dispatcher drains
type Outbox interface {
	PollUndelivered(ctx context.Context, limit int) ([]*entity.OutboxEntry, error)
	MarkDelivered(ctx context.Context, sequence uint64) error
	RecordFailure(ctx context.Context, sequence uint64, cause error) error
	Backlog(ctx context.Context) (int64, error)
}

// Config controls polling and retry behaviour
type Config struct {
	PollInterval   coreport.Duration
	BatchSize      int
	InitialBackoff coreport.Duration
	MaxBackoff     coreport.Duration
	JitterFactor   float64
}

// DefaultConfig returns the standard dispatcher settings
func DefaultConfig() Config {
	return Config{
		PollInterval:   500 * coreport.Millisecond,
		BatchSize:      100,
		InitialBackoff: 200 * coreport.Millisecond,
		MaxBackoff:     30 * coreport.Second,
		JitterFactor:   0.2,
	}
}

// Dispatcher drains the outbox to the event bus in sequence order.
// Delivery is at-least-once: an entry is only marked after the bus accepted it,
// and failed entries are retried forever with exponential backoff.
type Dispatcher struct {
	outbox       Outbox
	bus          messaging.EventBus
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	config       Config
	backoff      Backoff
}

// NewDispatcher creates a dispatcher
func NewDispatcher(
	outbox Outbox,
	bus messaging.EventBus,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	config Config,
) *Dispatcher {
	defaults := DefaultConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = defaults.InitialBackoff
	}
	if config.MaxBackoff <= 0 {
		config.MaxBackoff = defaults.MaxBackoff
	}
	if config.MaxBackoff < config.InitialBackoff {
		config.MaxBackoff = config.InitialBackoff
	}

	return &Dispatcher{
		outbox:       outbox,
		bus:          bus,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		config:       config,
		backoff:      NewBackoff(config.InitialBackoff, config.MaxBackoff, config.JitterFactor),
	}
}

// Run drains the outbox until ctx is cancelled
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("Event dispatcher started", map[string]any{
		"poll_interval": d.config.PollInterval.Std().String(),
		"batch_size":    d.config.BatchSize,
	})

	failures := 0
	for {
		delivered, err := d.DrainOnce(ctx)
		if ctx.Err() != nil {
			d.logger.Info("Event dispatcher stopped", nil)
			return nil
		}

		var wait coreport.Duration
		switch {
		case err != nil:
			wait = d.backoff.Next(failures)
			failures++
			d.logger.Warn("Outbox drain failed, backing off", map[string]any{
				"attempt":     failures,
				"retry_after": wait.Std().String(),
				"error":       err.Error(),
			})
		case delivered == d.config.BatchSize:
			// A full batch means more entries are probably waiting.
			failures = 0
			continue
		default:
			failures = 0
			wait = d.config.PollInterval
		}

		select {
		case <-ctx.Done():
			d.logger.Info("Event dispatcher stopped", nil)
			return nil
		case <-d.timeProvider.After(wait):
		}
	}
}

// DrainOnce publishes one batch of undelivered entries and returns how many were delivered.
// It stops at the first failure so later entries never overtake an earlier one.
func (d *Dispatcher) DrainOnce(ctx context.Context) (int, error) {
	entries, err := d.outbox.PollUndelivered(ctx, d.config.BatchSize)
	if err != nil {
		return 0, err
	}
	defer d.reportBacklog(ctx)

	delivered := 0
	for _, entry := range entries {
		if err := d.bus.Publish(ctx, entry); err != nil {
			d.metrics.IncDeliveryFailures()
			if recErr := d.outbox.RecordFailure(ctx, entry.Sequence, err); recErr != nil {
				d.logger.Warn("Failed to record delivery failure", map[string]any{
					"sequence": entry.Sequence,
					"error":    recErr.Error(),
				})
			}
			return delivered, errs.NewDeliveryError(entry.Sequence, entry.Topic, err)
		}
		d.metrics.IncEventsDelivered(1)

		if err := d.outbox.MarkDelivered(ctx, entry.Sequence); err != nil {
			d.logger.Error("Failed to mark outbox entry delivered, it will be redelivered", map[string]any{
				"sequence":  entry.Sequence,
				"player_id": entry.Key,
				"error":     err.Error(),
			})
			return delivered, err
		}
		delivered++

		d.logger.Debug("Outbox entry delivered", map[string]any{
			"sequence":  entry.Sequence,
			"player_id": entry.Key,
			"topic":     entry.Topic,
		})
	}
	return delivered, nil
}

func (d *Dispatcher) reportBacklog(ctx context.Context) {
	backlog, err := d.outbox.Backlog(ctx)
	if err != nil {
		d.logger.Debug("Failed to read outbox backlog", map[string]any{"error": err.Error()})
		return
	}
	d.metrics.SetOutboxBacklog(backlog)
}
