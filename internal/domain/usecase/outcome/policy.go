package outcome

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
)

// drawResolution is the number of equally likely draws per decision.
// Win probabilities are honoured to four decimal places.
const drawResolution = 10000

// Default odds: a 30% chance to be paid twice the bet
var (
	DefaultWinProbability   = decimal.RequireFromString("0.30")
	DefaultPayoutMultiplier = decimal.NewFromInt(2)
)

var maxBalance = decimal.NewFromInt(math.MaxInt64)

// Policy is the single configuration point for game odds
type Policy struct {
	WinProbability   decimal.Decimal
	PayoutMultiplier decimal.Decimal
}

// DefaultPolicy returns the standard odds
func DefaultPolicy() Policy {
	return Policy{
		WinProbability:   DefaultWinProbability,
		PayoutMultiplier: DefaultPayoutMultiplier,
	}
}

// ParsePolicy builds a policy from configuration strings such as "0.30" and "2"
func ParsePolicy(winProbability, payoutMultiplier string) (Policy, error) {
	probability, err := decimal.NewFromString(winProbability)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid win probability %q: %w", winProbability, err)
	}

	multiplier, err := decimal.NewFromString(payoutMultiplier)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid payout multiplier %q: %w", payoutMultiplier, err)
	}

	policy := Policy{WinProbability: probability, PayoutMultiplier: multiplier}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

// Validate checks that the probability lies in [0, 1] and the multiplier is not negative
func (p Policy) Validate() error {
	if p.WinProbability.IsNegative() || p.WinProbability.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("win probability must be between 0 and 1, got %s", p.WinProbability)
	}
	if p.PayoutMultiplier.IsNegative() {
		return fmt.Errorf("payout multiplier cannot be negative, got %s", p.PayoutMultiplier)
	}
	return nil
}

// winThreshold returns how many of drawResolution draws count as a win
func (p Policy) winThreshold() int {
	return int(p.WinProbability.Mul(decimal.NewFromInt(drawResolution)).Floor().IntPart())
}

// Payout returns floor(bet * multiplier)
func (p Policy) Payout(bet int64) (int64, error) {
	payout := decimal.NewFromInt(bet).Mul(p.PayoutMultiplier).Floor()
	if payout.GreaterThan(maxBalance) {
		return 0, errs.ErrAmountOverflow
	}
	return payout.IntPart(), nil
}

// String renders the policy for logs
func (p Policy) String() string {
	return fmt.Sprintf("win=%s payout=%sx", p.WinProbability.String(), p.PayoutMultiplier.String())
}
