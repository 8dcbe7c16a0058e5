package database

import (
	"context"
	"math/rand/v2"
	"time"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxAttempts   int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // 0.0-1.0
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   5,
		RetryInterval: 500 * time.Millisecond,
		MaxInterval:   10 * time.Second,
		JitterFactor:  0.2,
	}
}

// Retry runs operation until it succeeds, retryable reports false, the
// attempts run out or ctx is done. It returns the last error.
func Retry(
	ctx context.Context,
	config RetryConfig,
	logger coreport.Logger,
	operation func(context.Context) error,
	retryable func(error) bool,
) error {
	var err error
	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == config.MaxAttempts-1 {
			break
		}

		backoff := calculateBackoffWithJitter(attempt, config)
		logger.Warn("Database operation failed, retrying", map[string]any{
			"attempt":      attempt + 1,
			"max_attempts": config.MaxAttempts,
			"error":        err.Error(),
			"retry_after":  backoff.String(),
		})

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"max_attempts": config.MaxAttempts,
		"error":        err.Error(),
	})
	return err
}

// calculateBackoffWithJitter doubles the interval per attempt up to MaxInterval
// and adds up to JitterFactor of it at random
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval
	for i := 0; i < attempt && backoff < config.MaxInterval; i++ {
		backoff *= 2
	}
	if config.MaxInterval > 0 && backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		backoff += time.Duration(float64(backoff) * config.JitterFactor * rand.Float64())
	}
	return backoff
}
