package ledger

import (
	"context"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
)

// Ledger applies balance mutations inside the caller's unit of work.
// Every mutation reads the player with an exclusive lock first, so two
// mutations on the same player never interleave.
type Ledger struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewLedger creates a new ledger
func NewLedger(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Ledger {
	return &Ledger{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Debit subtracts amount and returns the new balance
func (l *Ledger) Debit(ctx context.Context, playerID string, amount int64) (int64, error) {
	return l.apply(ctx, playerID, amount, "debit", func(player *entity.Player) error {
		return player.Debit(amount, l.timeProvider)
	})
}

// DebitForSpin debits a wager and counts the spin against the player
func (l *Ledger) DebitForSpin(ctx context.Context, playerID string, bet int64) (int64, error) {
	return l.apply(ctx, playerID, bet, "wager", func(player *entity.Player) error {
		if err := player.Debit(bet, l.timeProvider); err != nil {
			return err
		}
		player.RecordSpin()
		return nil
	})
}

// Credit adds amount and returns the new balance
func (l *Ledger) Credit(ctx context.Context, playerID string, amount int64) (int64, error) {
	return l.apply(ctx, playerID, amount, "credit", func(player *entity.Player) error {
		return player.Credit(amount, l.timeProvider)
	})
}

func (l *Ledger) apply(ctx context.Context, playerID string, amount int64, operation string, mutate func(*entity.Player) error) (int64, error) {
	if amount <= 0 {
		return 0, errs.ErrInvalidAmount
	}

	repo := l.uow.GetPlayerRepository(ctx)
	player, err := repo.GetForUpdate(ctx, playerID)
	if err != nil {
		return 0, err
	}

	if err := mutate(player); err != nil {
		l.logger.Debug("Ledger mutation rejected", map[string]any{
			"player_id": playerID,
			"operation": operation,
			"amount":    amount,
			"balance":   player.Balance(),
			"error":     err.Error(),
		})
		return 0, err
	}

	if err := repo.Update(ctx, player); err != nil {
		return 0, err
	}

	l.logger.Debug("Ledger mutation applied", map[string]any{
		"player_id":   playerID,
		"operation":   operation,
		"amount":      amount,
		"new_balance": player.Balance(),
	})
	return player.Balance(), nil
}
