package spin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/outcome"
)

// Spin transaction states, in order
const (
	StateReceived       = "Received"
	StateValidated      = "Validated"
	StateDebited        = "Debited"
	StateOutcomeDecided = "OutcomeDecided"
	StateSettled        = "Settled"
	StateOutboxed       = "Outboxed"
	StateComplete       = "Complete"
)

// Ledger mutates balances inside the unit of work carried by ctx
type Ledger interface {
	DebitForSpin(ctx context.Context, playerID string, bet int64) (int64, error)
	Credit(ctx context.Context, playerID string, amount int64) (int64, error)
}

// Outbox stages completion events inside the unit of work carried by ctx
type Outbox interface {
	Append(ctx context.Context, event entity.SpinCompletedEvent) (uint64, error)
}

// OutcomeDecider decides whether a wager wins and what it pays
type OutcomeDecider interface {
	Decide(bet int64) (outcome.Outcome, error)
}

// Engine runs spin transactions. It is the only entry point that mutates balances for play.
type Engine struct {
	uow          persistence.UnitOfWork
	ledger       Ledger
	outbox       Outbox
	decider      OutcomeDecider
	serializer   *PlayerSerializer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewEngine wires a spin engine
func NewEngine(
	uow persistence.UnitOfWork,
	ledger Ledger,
	outbox Outbox,
	decider OutcomeDecider,
	serializer *PlayerSerializer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Engine {
	return &Engine{
		uow:          uow,
		ledger:       ledger,
		outbox:       outbox,
		decider:      decider,
		serializer:   serializer,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// Spin debits bet from the player, decides the outcome, credits any payout and
// stages a SPIN_COMPLETED event. Either all of it commits or none of it does.
func (e *Engine) Spin(ctx context.Context, playerID string, bet int64) (*entity.SpinResult, error) {
	start := e.timeProvider.Now()

	if bet <= 0 {
		e.metrics.ObserveSpin(coreport.SpinResultRejected, e.timeProvider.Since(start))
		return nil, errs.NewSpinError(playerID, bet, StateReceived, errs.ErrInvalidBet)
	}
	if strings.TrimSpace(playerID) == "" {
		e.metrics.ObserveSpin(coreport.SpinResultRejected, e.timeProvider.Since(start))
		return nil, errs.NewSpinError(playerID, bet, StateReceived, errs.ErrPlayerNotFound)
	}

	result, err := e.serializer.Do(ctx, playerID, func(ctx context.Context) (*entity.SpinResult, error) {
		return e.settle(ctx, playerID, bet)
	})
	elapsed := e.timeProvider.Since(start)

	if err != nil {
		var spinErr *errs.SpinError
		if !errors.As(err, &spinErr) {
			err = errs.NewSpinError(playerID, bet, StateReceived, err)
			errors.As(err, &spinErr)
		}

		if errs.IsClientError(err) {
			e.metrics.ObserveSpin(coreport.SpinResultRejected, elapsed)
			e.logger.Info("Spin rejected", spinErr.LogFields())
		} else {
			e.metrics.ObserveSpin(coreport.SpinResultFailed, elapsed)
			e.logger.Error("Spin failed", spinErr.LogFields())
		}
		return nil, err
	}

	label := coreport.SpinResultLost
	if result.Won() {
		label = coreport.SpinResultWon
	}
	e.metrics.ObserveSpin(label, elapsed)

	e.logger.Info("Spin completed", map[string]any{
		"player_id":   playerID,
		"bet":         bet,
		"win":         result.Win,
		"new_balance": result.NewBalance,
		"sequence":    result.Sequence,
		"duration_ms": elapsed.Std().Milliseconds(),
	})
	return result, nil
}

// settle runs on the player's worker; it is never concurrent with another settle for the same player
func (e *Engine) settle(ctx context.Context, playerID string, bet int64) (*entity.SpinResult, error) {
	state := StateReceived

	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, errs.NewSpinError(playerID, bet, state, storeError(err))
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := e.uow.Rollback(txCtx); rbErr != nil {
			e.logger.Warn("Failed to rollback spin transaction", map[string]any{
				"player_id": playerID,
				"error":     rbErr.Error(),
			})
		}
	}()

	newBalance, err := e.ledger.DebitForSpin(txCtx, playerID, bet)
	if err != nil {
		if !errs.IsPlayerNotFoundError(err) {
			state = StateValidated
		}
		return nil, errs.NewSpinError(playerID, bet, state, classify(err))
	}
	state = StateDebited

	decision, err := e.decider.Decide(bet)
	if err != nil {
		return nil, errs.NewSpinError(playerID, bet, state, err)
	}
	state = StateOutcomeDecided

	if decision.Payout > 0 {
		newBalance, err = e.ledger.Credit(txCtx, playerID, decision.Payout)
		if err != nil {
			return nil, errs.NewSpinError(playerID, bet, state, classify(err))
		}
	}
	state = StateSettled

	event := entity.NewSpinCompletedEvent(playerID, bet, decision.Payout, newBalance, e.timeProvider.Now())
	sequence, err := e.outbox.Append(txCtx, event)
	if err != nil {
		return nil, errs.NewSpinError(playerID, bet, state, storeError(err))
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, errs.NewSpinError(playerID, bet, state, storeError(err))
	}
	committed = true

	return &entity.SpinResult{
		PlayerID:   playerID,
		Bet:        bet,
		Win:        decision.Payout,
		NewBalance: newBalance,
		Sequence:   sequence,
	}, nil
}

// classify keeps domain errors and reports everything else as a store fault
func classify(err error) error {
	switch {
	case errors.Is(err, errs.ErrPlayerNotFound),
		errors.Is(err, errs.ErrInsufficientFunds),
		errors.Is(err, errs.ErrInvalidAmount),
		errors.Is(err, errs.ErrAmountOverflow):
		return err
	default:
		return storeError(err)
	}
}

func storeError(err error) error {
	if errors.Is(err, errs.ErrTransientStore) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", errs.ErrTransientStore, err)
}
