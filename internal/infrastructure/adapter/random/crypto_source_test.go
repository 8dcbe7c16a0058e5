package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoSource_Intn(t *testing.T) {
	source := NewCryptoSource()

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v, err := source.Intn(10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 10)
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}

func TestCryptoSource_RejectsNonPositiveBound(t *testing.T) {
	source := NewCryptoSource()

	_, err := source.Intn(0)
	assert.Error(t, err)

	_, err = source.Intn(-3)
	assert.Error(t, err)
}

func TestCryptoSource_WinRateMatchesThreshold(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test skipped in short mode")
	}

	source := NewCryptoSource()
	const draws = 100000
	wins := 0
	for i := 0; i < draws; i++ {
		v, err := source.Intn(10000)
		require.NoError(t, err)
		if v < 3000 {
			wins++
		}
	}

	rate := float64(wins) / draws
	assert.InDelta(t, 0.30, rate, 0.01)
}
