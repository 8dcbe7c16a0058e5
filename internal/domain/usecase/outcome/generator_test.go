package outcome

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/spin-engine/mocks/port/core"
)

func TestDecide_DefaultPolicy(t *testing.T) {
	testCases := []struct {
		name           string
		draw           int
		expectedWon    bool
		expectedPayout int64
	}{
		{"Lowest draw wins", 0, true, 100},
		{"Last winning draw", 2999, true, 100},
		{"First losing draw", 3000, false, 0},
		{"Highest draw loses", 9999, false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rng := coremocks.NewMockRandomSource(t)
			rng.EXPECT().Intn(10000).Return(tc.draw, nil).Once()

			generator, err := NewGenerator(rng, DefaultPolicy())
			require.NoError(t, err)

			outcome, err := generator.Decide(50)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedWon, outcome.Won)
			assert.Equal(t, tc.expectedPayout, outcome.Payout)
		})
	}
}

func TestDecide_InvalidBet(t *testing.T) {
	rng := coremocks.NewMockRandomSource(t)
	generator, err := NewGenerator(rng, DefaultPolicy())
	require.NoError(t, err)

	_, err = generator.Decide(0)

	assert.ErrorIs(t, err, errs.ErrInvalidBet)
	rng.AssertNotCalled(t, "Intn", mock.Anything)
}

func TestDecide_RandomSourceFailure(t *testing.T) {
	rng := coremocks.NewMockRandomSource(t)
	rng.EXPECT().Intn(10000).Return(0, errors.New("entropy unavailable")).Once()

	generator, err := NewGenerator(rng, DefaultPolicy())
	require.NoError(t, err)

	_, err = generator.Decide(10)

	assert.ErrorIs(t, err, errs.ErrRandomSource)
}

func TestDecide_PayoutOverflow(t *testing.T) {
	rng := coremocks.NewMockRandomSource(t)
	rng.EXPECT().Intn(10000).Return(0, nil).Once()

	generator, err := NewGenerator(rng, DefaultPolicy())
	require.NoError(t, err)

	_, err = generator.Decide(math.MaxInt64/2 + 1)

	assert.ErrorIs(t, err, errs.ErrAmountOverflow)
}

func TestPolicyPayoutRoundsDown(t *testing.T) {
	policy, err := ParsePolicy("0.5", "1.5")
	require.NoError(t, err)

	payout, err := policy.Payout(3)

	require.NoError(t, err)
	assert.Equal(t, int64(4), payout)
	assert.Equal(t, 5000, policy.winThreshold())
}

func TestParsePolicy(t *testing.T) {
	testCases := []struct {
		name        string
		probability string
		multiplier  string
		expectError bool
	}{
		{"Default odds", "0.30", "2", false},
		{"Never wins", "0", "2", false},
		{"Always wins", "1", "2", false},
		{"Probability above one", "1.01", "2", true},
		{"Negative probability", "-0.1", "2", true},
		{"Negative multiplier", "0.3", "-1", true},
		{"Malformed probability", "thirty", "2", true},
		{"Malformed multiplier", "0.3", "two", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePolicy(tc.probability, tc.multiplier)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewGenerator_RejectsInvalidPolicy(t *testing.T) {
	rng := coremocks.NewMockRandomSource(t)

	_, err := NewGenerator(rng, Policy{
		WinProbability:   decimal.NewFromInt(2),
		PayoutMultiplier: decimal.NewFromInt(2),
	})

	assert.Error(t, err)
}

func TestNewGenerator_RejectsNilRandomSource(t *testing.T) {
	generator, err := NewGenerator(nil, DefaultPolicy())

	assert.ErrorIs(t, err, errs.ErrRandomSource)
	assert.Nil(t, generator)
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.WinProbability.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, policy.PayoutMultiplier.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 3000, policy.winThreshold())
	assert.Equal(t, "win=0.3 payout=2x", policy.String())
}
