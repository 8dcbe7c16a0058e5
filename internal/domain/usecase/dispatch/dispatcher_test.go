package dispatch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	mockcore "github.com/amirhossein-jamali/spin-engine/mocks/port/core"
	mockmessaging "github.com/amirhossein-jamali/spin-engine/mocks/port/messaging"
)

// fakeOutbox keeps entries in memory and can fail MarkDelivered on demand
type fakeOutbox struct {
	mu        sync.Mutex
	entries   map[uint64]*entity.OutboxEntry
	failMarks map[uint64]int
}

func newFakeOutbox(count int) *fakeOutbox {
	o := &fakeOutbox{entries: map[uint64]*entity.OutboxEntry{}, failMarks: map[uint64]int{}}
	for seq := uint64(1); seq <= uint64(count); seq++ {
		o.entries[seq] = &entity.OutboxEntry{Sequence: seq, Topic: "spin-events", Key: "player-1"}
	}
	return o
}

func (o *fakeOutbox) PollUndelivered(_ context.Context, limit int) ([]*entity.OutboxEntry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var pending []*entity.OutboxEntry
	for _, entry := range o.entries {
		if !entry.Delivered {
			copied := *entry
			pending = append(pending, &copied)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Sequence < pending[j].Sequence })
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (o *fakeOutbox) MarkDelivered(_ context.Context, sequence uint64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.failMarks[sequence] > 0 {
		o.failMarks[sequence]--
		return errs.ErrTransientStore
	}
	o.entries[sequence].MarkDelivered(time.Now())
	return nil
}

func (o *fakeOutbox) RecordFailure(_ context.Context, sequence uint64, cause error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries[sequence].RecordFailure(cause.Error())
	return nil
}

func (o *fakeOutbox) Backlog(context.Context) (int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var count int64
	for _, entry := range o.entries {
		if !entry.Delivered {
			count++
		}
	}
	return count, nil
}

func (o *fakeOutbox) attempts(sequence uint64) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.entries[sequence].Attempts
}

func newTestLogger(t *testing.T) *mockcore.MockLogger {
	mockLogger := mockcore.NewMockLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

func newTestMetrics(t *testing.T) *mockcore.MockMetrics {
	metrics := mockcore.NewMockMetrics(t)
	metrics.EXPECT().IncEventsDelivered(mock.Anything).Maybe()
	metrics.EXPECT().IncDeliveryFailures().Maybe()
	metrics.EXPECT().SetOutboxBacklog(mock.Anything).Maybe()
	return metrics
}

func newTestTime(t *testing.T) *mockcore.MockTimeProvider {
	mockTime := mockcore.NewMockTimeProvider(t)
	mockTime.EXPECT().After(mock.Anything).RunAndReturn(func(d coreport.Duration) <-chan time.Time {
		return time.After(d.Std())
	}).Maybe()
	return mockTime
}

func fastConfig() Config {
	return Config{
		PollInterval:   5 * coreport.Millisecond,
		BatchSize:      10,
		InitialBackoff: coreport.Millisecond,
		MaxBackoff:     5 * coreport.Millisecond,
		JitterFactor:   0.1,
	}
}

func TestDispatcher_DrainOnce_DeliversInSequenceOrder(t *testing.T) {
	ctx := context.Background()
	outbox := newFakeOutbox(3)
	bus := mockmessaging.NewMockEventBus(t)

	var published []uint64
	bus.EXPECT().Publish(ctx, mock.Anything).RunAndReturn(func(_ context.Context, entry *entity.OutboxEntry) error {
		published = append(published, entry.Sequence)
		return nil
	}).Times(3)

	metrics := newTestMetrics(t)
	d := NewDispatcher(outbox, bus, newTestTime(t), newTestLogger(t), metrics, fastConfig())

	delivered, err := d.DrainOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, delivered)
	assert.Equal(t, []uint64{1, 2, 3}, published)
	backlog, _ := outbox.Backlog(ctx)
	assert.Equal(t, int64(0), backlog)
	metrics.AssertCalled(t, "SetOutboxBacklog", int64(0))
}

func TestDispatcher_DrainOnce_StopsAtFirstPublishFailure(t *testing.T) {
	ctx := context.Background()
	outbox := newFakeOutbox(3)
	bus := mockmessaging.NewMockEventBus(t)
	bus.EXPECT().Publish(ctx, mock.MatchedBy(func(e *entity.OutboxEntry) bool { return e.Sequence == 1 })).Return(nil).Once()
	bus.EXPECT().Publish(ctx, mock.MatchedBy(func(e *entity.OutboxEntry) bool { return e.Sequence == 2 })).Return(errors.New("broker unavailable")).Once()

	d := NewDispatcher(outbox, bus, newTestTime(t), newTestLogger(t), newTestMetrics(t), fastConfig())

	delivered, err := d.DrainOnce(ctx)

	assert.Equal(t, 1, delivered)
	assert.ErrorIs(t, err, errs.ErrDelivery)
	assert.Equal(t, 1, outbox.attempts(2))
	backlog, _ := outbox.Backlog(ctx)
	assert.Equal(t, int64(2), backlog)
}

func TestDispatcher_MarkFailureCausesRedelivery(t *testing.T) {
	ctx := context.Background()
	outbox := newFakeOutbox(2)
	outbox.failMarks[1] = 1

	bus := mockmessaging.NewMockEventBus(t)
	var published []uint64
	bus.EXPECT().Publish(ctx, mock.Anything).RunAndReturn(func(_ context.Context, entry *entity.OutboxEntry) error {
		published = append(published, entry.Sequence)
		return nil
	})

	d := NewDispatcher(outbox, bus, newTestTime(t), newTestLogger(t), newTestMetrics(t), fastConfig())

	delivered, err := d.DrainOnce(ctx)
	assert.Equal(t, 0, delivered)
	assert.ErrorIs(t, err, errs.ErrTransientStore)

	delivered, err = d.DrainOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)

	// Sequence 1 reached the bus twice; consumers dedupe by sequence.
	assert.Equal(t, []uint64{1, 1, 2}, published)
}

func TestDispatcher_Run_RetriesUntilDelivered(t *testing.T) {
	outbox := newFakeOutbox(5)
	bus := mockmessaging.NewMockEventBus(t)

	var mu sync.Mutex
	failuresLeft := 3
	bus.EXPECT().Publish(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, entry *entity.OutboxEntry) error {
		mu.Lock()
		defer mu.Unlock()
		if failuresLeft > 0 {
			failuresLeft--
			return errors.New("broker unavailable")
		}
		return nil
	})

	d := NewDispatcher(outbox, bus, newTestTime(t), newTestLogger(t), newTestMetrics(t), fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	assert.Eventually(t, func() bool {
		backlog, _ := outbox.Backlog(context.Background())
		return backlog == 0
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancellation")
	}
	assert.Equal(t, 3, outbox.attempts(1))
}

func TestNewDispatcher_AppliesDefaults(t *testing.T) {
	d := NewDispatcher(newFakeOutbox(0), mockmessaging.NewMockEventBus(t), newTestTime(t), newTestLogger(t), newTestMetrics(t), Config{})

	assert.Equal(t, DefaultConfig().BatchSize, d.config.BatchSize)
	assert.Equal(t, DefaultConfig().PollInterval, d.config.PollInterval)
	assert.Equal(t, DefaultConfig().InitialBackoff, d.config.InitialBackoff)
	assert.Equal(t, DefaultConfig().MaxBackoff, d.config.MaxBackoff)
}
