package usecase

import (
	"context"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
)

// SpinUseCase runs the spin transaction
type SpinUseCase interface {
	// Spin debits bet, decides the outcome, credits any payout and stages the
	// completion event, all as one atomic unit
	Spin(ctx context.Context, playerID string, bet int64) (*entity.SpinResult, error)
}
