package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/logger"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:   attempts,
		RetryInterval: time.Millisecond,
		MaxInterval:   5 * time.Millisecond,
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(5), logger.NewNoopLogger(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	cause := errors.New("connection refused")
	err := Retry(context.Background(), fastRetry(3), logger.NewNoopLogger(), func(context.Context) error {
		calls++
		return cause
	}, nil)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("password authentication failed")
	err := Retry(context.Background(), fastRetry(5), logger.NewNoopLogger(), func(context.Context) error {
		calls++
		return permanent
	}, func(err error) bool { return !errors.Is(err, permanent) })

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetry(5)
	cfg.RetryInterval = time.Hour
	cfg.MaxInterval = time.Hour

	err := Retry(ctx, cfg, logger.NewNoopLogger(), func(context.Context) error {
		cancel()
		return errors.New("timeout")
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: time.Second}

	assert.Equal(t, 100*time.Millisecond, calculateBackoffWithJitter(0, cfg))
	assert.Equal(t, 400*time.Millisecond, calculateBackoffWithJitter(2, cfg))
	assert.Equal(t, time.Second, calculateBackoffWithJitter(10, cfg))

	cfg.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		backoff := calculateBackoffWithJitter(0, cfg)
		assert.GreaterOrEqual(t, backoff, 100*time.Millisecond)
		assert.LessOrEqual(t, backoff, 150*time.Millisecond)
	}
}
