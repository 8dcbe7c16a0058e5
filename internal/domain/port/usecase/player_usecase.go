package usecase

import (
	"context"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
)

// PlayerUseCase defines player account operations
type PlayerUseCase interface {
	// CreatePlayer opens an account with the given balance
	CreatePlayer(ctx context.Context, initialBalance int64) (*entity.Player, error)

	// GetBalance returns the player with its current balance
	GetBalance(ctx context.Context, playerID string) (*entity.Player, error)

	// SeedPlayers creates one player per opening balance
	SeedPlayers(ctx context.Context, balances []int64) ([]*entity.Player, error)
}
