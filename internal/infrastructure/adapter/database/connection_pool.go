package database

import (
	"context"
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// saturationRatio is the share of open connections in use above which the pool is reported as nearly exhausted
const saturationRatio = 0.8

// ConnectionPoolMetrics tracks database connection pool metrics
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// ConnectionPoolMonitor samples the connection pool and warns when it saturates
type ConnectionPoolMonitor struct {
	stats  func() sql.DBStats
	logger coreport.Logger

	mutex        sync.RWMutex
	metricsCache ConnectionPoolMetrics
}

// NewConnectionPoolMonitor creates a monitor reading stats from sqlDB
func NewConnectionPoolMonitor(sqlDB *sql.DB, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		stats:  sqlDB.Stats,
		logger: logger,
	}
}

// Run samples every interval until ctx is done
func (m *ConnectionPoolMonitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.collect()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collect()
		}
	}
}

// GetMetrics returns the most recent sample
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.metricsCache
}

func (m *ConnectionPoolMonitor) collect() {
	stats := m.stats()

	m.mutex.Lock()
	m.metricsCache = ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}
	m.mutex.Unlock()

	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > float64(stats.MaxOpenConnections)*saturationRatio {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}
}
