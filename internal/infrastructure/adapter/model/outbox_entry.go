package model

import (
	"time"
)

// OutboxEntry is a staged event row. Sequence is assigned by the database.
type OutboxEntry struct {
	Sequence    uint64 `gorm:"primaryKey;autoIncrement;index:idx_outbox_pending,priority:2"`
	Topic       string `gorm:"not null;size:255"`
	Key         string `gorm:"column:partition_key;not null;size:36;index"`
	Payload     []byte `gorm:"not null"`
	Delivered   bool   `gorm:"not null;default:false;index:idx_outbox_pending,priority:1"`
	DeliveredAt *time.Time
	Attempts    int       `gorm:"not null;default:0"`
	LastError   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for OutboxEntry
func (OutboxEntry) TableName() string {
	return "outbox_entries"
}
