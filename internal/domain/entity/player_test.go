package entity

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/spin-engine/mocks/port/core"
)

func TestNewPlayer(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid player creation", func(t *testing.T) {
		player, err := NewPlayer(1000, mockTime)

		require.NoError(t, err)
		_, parseErr := uuid.Parse(player.ID)
		assert.NoError(t, parseErr)
		assert.Equal(t, int64(1000), player.Balance())
		assert.Equal(t, fixedTime, player.CreatedAt)
		assert.Equal(t, fixedTime, player.UpdatedAt)
		assert.Equal(t, uint64(0), player.Version)
	})

	t.Run("Zero balance is allowed", func(t *testing.T) {
		player, err := NewPlayer(0, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(0), player.Balance())
	})

	t.Run("Negative balance is rejected", func(t *testing.T) {
		player, err := NewPlayer(-1, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Nil(t, player)
	})

	t.Run("Identifiers are unique", func(t *testing.T) {
		first, err := NewPlayer(1, mockTime)
		require.NoError(t, err)
		second, err := NewPlayer(1, mockTime)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestPlayerDebit(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	testCases := []struct {
		name            string
		balance         int64
		amount          int64
		expectedBalance int64
		expectedErr     error
	}{
		{"Partial debit", 100, 50, 50, nil},
		{"Debit to zero", 100, 100, 0, nil},
		{"Insufficient funds", 100, 101, 100, errs.ErrInsufficientFunds},
		{"Zero amount", 100, 0, 100, errs.ErrInvalidAmount},
		{"Negative amount", 100, -5, 100, errs.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			player := RestorePlayer("p1", tc.balance, 3, 0, fixedTime, fixedTime)

			err := player.Debit(tc.amount, mockTime)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, uint64(3), player.Version)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint64(4), player.Version)
			}
			assert.Equal(t, tc.expectedBalance, player.Balance())
		})
	}
}

func TestPlayerCredit(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Credit adds amount", func(t *testing.T) {
		player := RestorePlayer("p1", 50, 0, 0, fixedTime, fixedTime)

		require.NoError(t, player.Credit(100, mockTime))
		assert.Equal(t, int64(150), player.Balance())
	})

	t.Run("Credit overflow", func(t *testing.T) {
		player := RestorePlayer("p1", math.MaxInt64-10, 0, 0, fixedTime, fixedTime)

		err := player.Credit(11, mockTime)

		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
		assert.Equal(t, int64(math.MaxInt64-10), player.Balance())
	})

	t.Run("Credit rejects non-positive amount", func(t *testing.T) {
		player := RestorePlayer("p1", 50, 0, 0, fixedTime, fixedTime)

		assert.ErrorIs(t, player.Credit(0, mockTime), errs.ErrInvalidAmount)
	})
}

func TestPlayerCanDebit(t *testing.T) {
	player := RestorePlayer("p1", 100, 0, 0, time.Time{}, time.Time{})

	assert.True(t, player.CanDebit(100))
	assert.False(t, player.CanDebit(101))
	assert.False(t, player.CanDebit(0))
}
