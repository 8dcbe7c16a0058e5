package model

import (
	"time"
)

// Player represents the database model for player accounts
type Player struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Balance   int64     `gorm:"not null;check:chk_players_balance_non_negative,balance >= 0"`
	Version   uint64    `gorm:"not null;default:0"`
	SpinCount uint64    `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Player
func (Player) TableName() string {
	return "players"
}
