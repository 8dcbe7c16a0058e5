package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/model"
)

// maxLastErrorLength bounds the stored failure reason
const maxLastErrorLength = 1024

// OutboxRepository implements OutboxRepository interface using GORM
type OutboxRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewOutboxRepository creates a new OutboxRepository instance
func NewOutboxRepository(db *gorm.DB, logger coreport.Logger) *OutboxRepository {
	return &OutboxRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func modelToEntry(m *model.OutboxEntry) *entity.OutboxEntry {
	return &entity.OutboxEntry{
		Sequence:    m.Sequence,
		Topic:       m.Topic,
		Key:         m.Key,
		Payload:     m.Payload,
		Delivered:   m.Delivered,
		DeliveredAt: m.DeliveredAt,
		Attempts:    m.Attempts,
		LastError:   m.LastError,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *OutboxRepository) storeError(operation string, err error, sequence uint64) error {
	r.logger.Error("Database error on outbox", map[string]any{
		"operation": operation,
		"sequence":  sequence,
		"error":     err.Error(),
	})
	return r.errorClassifier.ToDomainError(err, errs.ErrOutboxEntryNotFound)
}

// Append inserts the entry; the database assigns its sequence
func (r *OutboxRepository) Append(ctx context.Context, entry *entity.OutboxEntry) (uint64, error) {
	row := model.OutboxEntry{
		Topic:     entry.Topic,
		Key:       entry.Key,
		Payload:   entry.Payload,
		CreatedAt: entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, r.storeError("append", err, 0)
	}

	entry.Sequence = row.Sequence
	return row.Sequence, nil
}

// ListUndelivered returns the oldest undelivered entries first
func (r *OutboxRepository) ListUndelivered(ctx context.Context, limit int) ([]*entity.OutboxEntry, error) {
	var rows []model.OutboxEntry
	err := r.db.WithContext(ctx).
		Where("delivered = ?", false).
		Order("sequence ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.storeError("list", err, 0)
	}

	entries := make([]*entity.OutboxEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, modelToEntry(&rows[i]))
	}
	return entries, nil
}

// MarkDelivered flags an entry as delivered
func (r *OutboxRepository) MarkDelivered(ctx context.Context, sequence uint64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.OutboxEntry{}).
		Where("sequence = ?", sequence).
		Updates(map[string]any{
			"delivered":    true,
			"delivered_at": at,
		})
	if result.Error != nil {
		return r.storeError("mark delivered", result.Error, sequence)
	}
	if result.RowsAffected == 0 {
		return errs.ErrOutboxEntryNotFound
	}
	return nil
}

// RecordFailure increments the attempt counter and stores the reason
func (r *OutboxRepository) RecordFailure(ctx context.Context, sequence uint64, reason string) error {
	if len(reason) > maxLastErrorLength {
		reason = reason[:maxLastErrorLength]
	}

	result := r.db.WithContext(ctx).Model(&model.OutboxEntry{}).
		Where("sequence = ?", sequence).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		})
	if result.Error != nil {
		return r.storeError("record failure", result.Error, sequence)
	}
	if result.RowsAffected == 0 {
		return errs.ErrOutboxEntryNotFound
	}
	return nil
}

// CountUndelivered returns the current backlog
func (r *OutboxRepository) CountUndelivered(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OutboxEntry{}).
		Where("delivered = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, r.storeError("count", err, 0)
	}
	return count, nil
}

// PurgeDelivered deletes delivered entries older than before
func (r *OutboxRepository) PurgeDelivered(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("delivered = ? AND delivered_at < ?", true, before).
		Delete(&model.OutboxEntry{})
	if result.Error != nil {
		return 0, r.storeError("purge", result.Error, 0)
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Purged delivered outbox entries", map[string]any{
			"count":  result.RowsAffected,
			"before": before,
		})
	}
	return result.RowsAffected, nil
}
