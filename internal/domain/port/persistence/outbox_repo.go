package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
)

// OutboxRepository stages events for delivery and tracks their delivery state
type OutboxRepository interface {
	// Append stores an entry and assigns its sequence
	//
	// Possible errors:
	// - ErrTransientStore: If the store is unavailable
	Append(ctx context.Context, entry *entity.OutboxEntry) (uint64, error)

	// ListUndelivered returns at most limit undelivered entries in ascending sequence order
	ListUndelivered(ctx context.Context, limit int) ([]*entity.OutboxEntry, error)

	// MarkDelivered flags an entry as accepted by the bus
	//
	// Possible errors:
	// - ErrOutboxEntryNotFound: If the sequence is unknown
	MarkDelivered(ctx context.Context, sequence uint64, at time.Time) error

	// RecordFailure increments the attempt counter and stores the last error
	RecordFailure(ctx context.Context, sequence uint64, reason string) error

	// CountUndelivered returns the current backlog
	CountUndelivered(ctx context.Context) (int64, error)

	// PurgeDelivered removes delivered entries older than the given time
	PurgeDelivered(ctx context.Context, before time.Time) (int64, error)
}
