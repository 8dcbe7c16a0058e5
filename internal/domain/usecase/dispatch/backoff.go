package dispatch

import (
	"math/rand/v2"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// Backoff computes retry delays: initial * 2^attempt capped at max, plus up to jitter*delay extra
type Backoff struct {
	Initial      coreport.Duration
	Max          coreport.Duration
	JitterFactor float64 // 0.0-1.0

	// random returns a value in [0, 1); replaced in tests
	random func() float64
}

// NewBackoff creates a backoff policy
func NewBackoff(initial, max coreport.Duration, jitterFactor float64) Backoff {
	return Backoff{
		Initial:      initial,
		Max:          max,
		JitterFactor: jitterFactor,
		random:       rand.Float64,
	}
}

// Next returns the delay before retry number attempt (starting at 0)
func (b Backoff) Next(attempt int) coreport.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := b.Max
	// Initial<<attempt stays within Max exactly when Initial <= Max>>attempt, so the shift never wraps.
	if b.Initial > 0 && attempt < 63 && b.Initial <= b.Max>>uint(attempt) {
		delay = b.Initial << uint(attempt)
	}

	if b.JitterFactor > 0 && b.random != nil {
		delay += coreport.Duration(float64(delay) * b.JitterFactor * b.random())
	}
	return delay
}
