package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	coremocks "github.com/amirhossein-jamali/spin-engine/mocks/port/core"
)

func TestConnectionPoolMonitor_WarnsWhenSaturated(t *testing.T) {
	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Warn("Database connection pool nearly exhausted", mock.Anything).Once()

	monitor := &ConnectionPoolMonitor{
		stats: func() sql.DBStats {
			return sql.DBStats{MaxOpenConnections: 10, OpenConnections: 10, InUse: 9, Idle: 1, WaitCount: 4}
		},
		logger: logger,
	}

	monitor.collect()

	metrics := monitor.GetMetrics()
	assert.Equal(t, 9, metrics.InUse)
	assert.Equal(t, int64(4), metrics.WaitCount)
}

func TestConnectionPoolMonitor_RunStopsWithContext(t *testing.T) {
	logger := coremocks.NewMockLogger(t)
	samples := 0
	monitor := &ConnectionPoolMonitor{
		stats: func() sql.DBStats {
			samples++
			return sql.DBStats{MaxOpenConnections: 10, InUse: 1}
		},
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		monitor.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
	assert.GreaterOrEqual(t, samples, 1)
}
