package memory

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
)

// OutboxRepository stages appended entries in the surrounding transaction.
// Delivery bookkeeping always applies to committed entries directly.
type OutboxRepository struct {
	store *Store
	tx    *tx
}

// Append assigns the next sequence. Sequences of rolled back entries are never reused.
func (r *OutboxRepository) Append(ctx context.Context, entry *entity.OutboxEntry) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	entry.Sequence = r.store.nextSequence()

	if r.tx != nil {
		r.tx.mu.Lock()
		defer r.tx.mu.Unlock()
		if r.tx.done {
			return 0, errs.ErrTransientStore
		}
		r.tx.outbox = append(r.tx.outbox, cloneEntry(entry))
		return entry.Sequence, nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.outbox[entry.Sequence] = cloneEntry(entry)
	return entry.Sequence, nil
}

// ListUndelivered returns committed, undelivered entries in sequence order
func (r *OutboxRepository) ListUndelivered(ctx context.Context, limit int) ([]*entity.OutboxEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sortedEntries(func(e *entity.OutboxEntry) bool { return !e.Delivered }, limit), nil
}

// MarkDelivered flags an entry as delivered
func (r *OutboxRepository) MarkDelivered(ctx context.Context, sequence uint64, at time.Time) error {
	return r.mutate(ctx, sequence, func(e *entity.OutboxEntry) {
		e.MarkDelivered(at)
	})
}

// RecordFailure counts a failed attempt
func (r *OutboxRepository) RecordFailure(ctx context.Context, sequence uint64, reason string) error {
	return r.mutate(ctx, sequence, func(e *entity.OutboxEntry) {
		e.RecordFailure(reason)
	})
}

// CountUndelivered returns the number of committed, undelivered entries
func (r *OutboxRepository) CountUndelivered(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, entry := range r.store.outbox {
		if !entry.Delivered {
			count++
		}
	}
	return count, nil
}

// PurgeDelivered deletes delivered entries older than before
func (r *OutboxRepository) PurgeDelivered(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	expired := deliveredBefore(before)
	var purged int64
	for sequence, entry := range r.store.outbox {
		if expired(entry) {
			delete(r.store.outbox, sequence)
			purged++
		}
	}
	return purged, nil
}

func (r *OutboxRepository) mutate(ctx context.Context, sequence uint64, apply func(*entity.OutboxEntry)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entry, ok := r.store.outbox[sequence]
	if !ok {
		return errs.ErrOutboxEntryNotFound
	}
	apply(entry)
	return nil
}
