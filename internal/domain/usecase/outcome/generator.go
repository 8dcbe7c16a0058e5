package outcome

import (
	"fmt"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// Outcome is the decision for a single wager
type Outcome struct {
	Won    bool
	Payout int64 // 0 on a loss
}

// Generator decides spin outcomes. It holds no state between calls.
type Generator struct {
	rng       coreport.RandomSource
	policy    Policy
	threshold int
}

// NewGenerator creates a generator for the given random source and policy
func NewGenerator(rng coreport.RandomSource, policy Policy) (*Generator, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", errs.ErrRandomSource)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &Generator{
		rng:       rng,
		policy:    policy,
		threshold: policy.winThreshold(),
	}, nil
}

// Decide draws once from the random source and applies the policy to bet
func (g *Generator) Decide(bet int64) (Outcome, error) {
	if bet <= 0 {
		return Outcome{}, errs.ErrInvalidBet
	}

	draw, err := g.rng.Intn(drawResolution)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", errs.ErrRandomSource, err)
	}

	if draw >= g.threshold {
		return Outcome{}, nil
	}

	payout, err := g.policy.Payout(bet)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Won: true, Payout: payout}, nil
}

// Policy returns the odds in use
func (g *Generator) Policy() Policy {
	return g.policy
}
