package spin

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

func newTestSerializer(t *testing.T, config SerializerConfig) *PlayerSerializer {
	s := NewPlayerSerializer(newTestLogger(t), newRealTimeMock(t), config)
	t.Cleanup(s.Shutdown)
	return s
}

func TestPlayerSerializer_RunsWorkForOnePlayerSequentially(t *testing.T) {
	s := newTestSerializer(t, DefaultSerializerConfig())

	var active, maxActive int32
	var order []int
	var orderMu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
				current := atomic.AddInt32(&active, 1)
				for {
					observed := atomic.LoadInt32(&maxActive)
					if current <= observed || atomic.CompareAndSwapInt32(&maxActive, observed, current) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				orderMu.Lock()
				order = append(order, i)
				orderMu.Unlock()
				atomic.AddInt32(&active, -1)
				return &entity.SpinResult{}, nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
	assert.Len(t, order, 50)
}

func TestPlayerSerializer_DifferentPlayersRunInParallel(t *testing.T) {
	s := newTestSerializer(t, DefaultSerializerConfig())

	release := make(chan struct{})
	started := make(chan string, 2)

	var wg sync.WaitGroup
	for _, id := range []string{"player-a", "player-b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = s.Do(context.Background(), id, func(ctx context.Context) (*entity.SpinResult, error) {
				started <- id
				<-release
				return &entity.SpinResult{PlayerID: id}, nil
			})
		}(id)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("work for different players did not run concurrently")
		}
	}
	close(release)
	wg.Wait()
	assert.Equal(t, 2, s.ActiveQueues())
}

func TestPlayerSerializer_ReturnsWorkResult(t *testing.T) {
	s := newTestSerializer(t, DefaultSerializerConfig())

	result, err := s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
		return &entity.SpinResult{PlayerID: "player-1", Bet: 5}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Bet)

	_, err = s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
		return nil, errs.ErrInsufficientFunds
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
}

func TestPlayerSerializer_SkipsCancelledWork(t *testing.T) {
	s := newTestSerializer(t, DefaultSerializerConfig())

	blocker := make(chan struct{})
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
			<-blocker
			return &entity.SpinResult{}, nil
		})
	}()

	// Let the first request occupy the worker.
	require.Eventually(t, func() bool { return s.ActiveQueues() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var ran atomic.Bool
	errChan := make(chan error, 1)
	go func() {
		_, err := s.Do(ctx, "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
			ran.Store(true)
			return &entity.SpinResult{}, nil
		})
		errChan <- err
	}()

	<-ctx.Done()
	close(blocker)
	<-firstDone

	// Once the worker reaches the abandoned request it must not execute it.
	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled request was never answered")
	}
	assert.False(t, ran.Load())
}

func TestPlayerSerializer_ReportsWorkThatFinishedAfterCancel(t *testing.T) {
	s := newTestSerializer(t, DefaultSerializerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := s.Do(ctx, "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
		// Committed work outlives the caller's context.
		cancel()
		<-ctx.Done()
		return &entity.SpinResult{PlayerID: "player-1", Sequence: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), result.Sequence)
}

func TestPlayerSerializer_RetiresIdleWorkers(t *testing.T) {
	s := newTestSerializer(t, SerializerConfig{IdleTimeout: 10 * coreport.Millisecond})

	_, err := s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
		return &entity.SpinResult{}, nil
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return s.ActiveQueues() == 0 }, time.Second, 5*time.Millisecond)

	// A retired player gets a fresh worker on the next request.
	_, err = s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
		return &entity.SpinResult{}, nil
	})
	assert.NoError(t, err)
}

func TestPlayerSerializer_Shutdown(t *testing.T) {
	s := NewPlayerSerializer(newTestLogger(t), newRealTimeMock(t), DefaultSerializerConfig())

	_, err := s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
		return &entity.SpinResult{}, nil
	})
	require.NoError(t, err)

	s.Shutdown()
	s.Shutdown()

	_, err = s.Do(context.Background(), "player-1", func(ctx context.Context) (*entity.SpinResult, error) {
		return &entity.SpinResult{}, nil
	})
	assert.ErrorIs(t, err, errs.ErrSerializerClosed)
	assert.Equal(t, 0, s.ActiveQueues())
}
