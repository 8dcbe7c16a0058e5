package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/database/migration"
)

// poolSampleInterval is how often the pool monitor samples connection stats
const poolSampleInterval = 30 * time.Second

// Manager owns the database connection and its lifecycle
type Manager struct {
	config       *Config
	db           *gorm.DB
	sqlDB        *sql.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	monitor      *ConnectionPoolMonitor
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Connect opens the connection, retrying while the server is unreachable
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.portOrDefault(),
		"name":   m.config.Database,
	})

	retryConfig := DefaultRetryConfig()
	retryConfig.MaxAttempts = m.config.RetryAttempts
	if m.config.RetryDelay > 0 {
		retryConfig.RetryInterval = m.config.RetryDelay
	}

	var gormDB *gorm.DB
	err := Retry(ctx, retryConfig, m.logger, func(ctx context.Context) error {
		db, err := gorm.Open(m.dialector(), &gorm.Config{
			Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowQueryThreshold),
			NowFunc: func() time.Time {
				return m.timeProvider.Now().UTC()
			},
			TranslateError: true,
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			return err
		}

		gormDB = db
		return nil
	}, isRetryableConnectError)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", m.config.RetryAttempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.db = gormDB
	m.sqlDB = sqlDB
	m.monitor = NewConnectionPoolMonitor(sqlDB, m.logger)

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":         m.config.Driver,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
	})
	return m.db, nil
}

func (m *Manager) dialector() gorm.Dialector {
	if m.config.Driver == DriverMySQL {
		return mysql.Open(m.config.DSN())
	}
	return postgres.Open(m.config.DSN())
}

// isRetryableConnectError rejects failures a retry cannot fix
func isRetryableConnectError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	message := strings.ToLower(err.Error())
	return !strings.Contains(message, "authentication failed") &&
		!strings.Contains(message, "access denied") &&
		!strings.Contains(message, "does not exist")
}

// Migrate brings the schema up to date
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// MonitorPool samples pool statistics until ctx is done
func (m *Manager) MonitorPool(ctx context.Context) {
	m.monitor.Run(ctx, poolSampleInterval)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// SQLDB returns the underlying connection pool
func (m *Manager) SQLDB() *sql.DB {
	return m.sqlDB
}

// Ping checks that the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.QueryTimeout)
		defer cancel()
	}
	return m.sqlDB.PingContext(ctx)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.sqlDB == nil {
		return nil
	}
	m.logger.Info("Closing database connection", nil)
	return m.sqlDB.Close()
}
