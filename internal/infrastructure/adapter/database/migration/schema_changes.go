package migration

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/model"
)

// addSpinCount adds players.spin_count to databases created before it existed
func addSpinCount(ctx context.Context, db *gorm.DB) error {
	migrator := db.WithContext(ctx).Migrator()
	if migrator.HasColumn(&model.Player{}, "SpinCount") {
		return nil
	}
	return migrator.AddColumn(&model.Player{}, "SpinCount")
}

// createPendingOutboxIndex adds a partial index covering only undelivered
// rows. MySQL has no partial indexes and relies on idx_outbox_pending.
func createPendingOutboxIndex(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.WithContext(ctx).Exec(`
		CREATE INDEX IF NOT EXISTS idx_outbox_entries_undelivered
		ON outbox_entries (sequence)
		WHERE delivered = false
	`).Error
}
