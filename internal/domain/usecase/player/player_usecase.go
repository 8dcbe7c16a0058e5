package player

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
)

// PlayerUseCase handles player account operations
type PlayerUseCase struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewPlayerUseCase creates a new PlayerUseCase
func NewPlayerUseCase(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *PlayerUseCase {
	return &PlayerUseCase{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreatePlayer opens a new account with the given balance
func (u *PlayerUseCase) CreatePlayer(ctx context.Context, initialBalance int64) (*entity.Player, error) {
	player, err := entity.NewPlayer(initialBalance, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.uow.GetPlayerRepository(ctx).Create(ctx, player); err != nil {
		u.logger.Error("Failed to create player", map[string]any{
			"player_id": player.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Player created", map[string]any{
		"player_id":       player.ID,
		"initial_balance": initialBalance,
	})
	return player, nil
}

// GetBalance returns the player with its current balance
func (u *PlayerUseCase) GetBalance(ctx context.Context, playerID string) (*entity.Player, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, errs.ErrPlayerNotFound
	}
	return u.uow.GetPlayerRepository(ctx).GetByID(ctx, playerID)
}

// SeedPlayers creates one player per opening balance
func (u *PlayerUseCase) SeedPlayers(ctx context.Context, balances []int64) ([]*entity.Player, error) {
	players := make([]*entity.Player, 0, len(balances))
	for _, balance := range balances {
		player, err := u.CreatePlayer(ctx, balance)
		if err != nil {
			return players, err
		}
		players = append(players, player)
	}

	u.logger.Info("Seed players created", map[string]any{
		"count": len(players),
	})
	return players, nil
}
