package outbox

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
)

// DefaultTopic is the bus topic for spin completion events
const DefaultTopic = "spin-events"

// Outbox stages completion events next to the balance changes that produced them.
// Append must run inside the same unit of work as the ledger mutation.
type Outbox struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	topic        string
}

// NewOutbox creates an outbox publishing to topic
func NewOutbox(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, topic string) *Outbox {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Outbox{
		uow:          uow,
		timeProvider: timeProvider,
		topic:        topic,
	}
}

// Topic returns the destination topic of staged entries
func (o *Outbox) Topic() string {
	return o.topic
}

// Append serializes the event and stages it, keyed by player
func (o *Outbox) Append(ctx context.Context, event entity.SpinCompletedEvent) (uint64, error) {
	payload, err := event.Marshal()
	if err != nil {
		return 0, fmt.Errorf("marshal spin event: %w", err)
	}

	entry := entity.NewOutboxEntry(o.topic, event.PlayerID, payload, o.timeProvider.Now())
	return o.uow.GetOutboxRepository(ctx).Append(ctx, entry)
}

// PollUndelivered returns up to limit undelivered entries, oldest first
func (o *Outbox) PollUndelivered(ctx context.Context, limit int) ([]*entity.OutboxEntry, error) {
	return o.uow.GetOutboxRepository(ctx).ListUndelivered(ctx, limit)
}

// MarkDelivered records that the bus accepted the entry
func (o *Outbox) MarkDelivered(ctx context.Context, sequence uint64) error {
	return o.uow.GetOutboxRepository(ctx).MarkDelivered(ctx, sequence, o.timeProvider.Now())
}

// RecordFailure stores a failed publish attempt. The entry stays undelivered.
func (o *Outbox) RecordFailure(ctx context.Context, sequence uint64, cause error) error {
	return o.uow.GetOutboxRepository(ctx).RecordFailure(ctx, sequence, cause.Error())
}

// Backlog returns the number of undelivered entries
func (o *Outbox) Backlog(ctx context.Context) (int64, error) {
	return o.uow.GetOutboxRepository(ctx).CountUndelivered(ctx)
}

// PurgeDelivered removes delivered entries older than retention
func (o *Outbox) PurgeDelivered(ctx context.Context, retention coreport.Duration) (int64, error) {
	before := o.timeProvider.Now().Add(-retention.Std())
	return o.uow.GetOutboxRepository(ctx).PurgeDelivered(ctx, before)
}
