package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// Player represents a player account holding a balance in the smallest currency unit
type Player struct {
	ID        string    // Opaque unique identifier
	balance   int64     // Never negative (private)
	Version   uint64    // Incremented on every balance change
	SpinCount uint64    // Number of settled spins
	CreatedAt time.Time // When the player was created
	UpdatedAt time.Time // When the balance last changed
}

// NewPlayer creates a player with a fresh identifier and the given opening balance
func NewPlayer(initialBalance int64, timeProvider coreport.TimeProvider) (*Player, error) {
	if initialBalance < 0 {
		return nil, fmt.Errorf("%w: opening balance %d is negative", errs.ErrInvalidAmount, initialBalance)
	}

	now := timeProvider.Now()
	return &Player{
		ID:        uuid.NewString(),
		balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestorePlayer rebuilds a player from stored state
func RestorePlayer(id string, balance int64, version, spinCount uint64, createdAt, updatedAt time.Time) *Player {
	return &Player{
		ID:        id,
		balance:   balance,
		Version:   version,
		SpinCount: spinCount,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Balance returns the current balance
func (p *Player) Balance() int64 {
	return p.balance
}

// CanDebit checks if the player has enough balance for a debit
func (p *Player) CanDebit(amount int64) bool {
	return amount > 0 && p.balance >= amount
}

// Debit subtracts amount from the balance.
// Returns an InsufficientFundsError if the balance would go below zero.
func (p *Player) Debit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}
	if p.balance < amount {
		return errs.NewInsufficientFundsError(p.ID, amount, p.balance)
	}

	p.balance -= amount
	p.touch(timeProvider)
	return nil
}

// Credit adds amount to the balance
func (p *Player) Credit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}
	if amount > math.MaxInt64-p.balance {
		return errs.ErrAmountOverflow
	}

	p.balance += amount
	p.touch(timeProvider)
	return nil
}

// RecordSpin increases the settled spin count by 1
func (p *Player) RecordSpin() {
	p.SpinCount++
}

func (p *Player) touch(timeProvider coreport.TimeProvider) {
	p.Version++
	p.UpdatedAt = timeProvider.Now()
}
