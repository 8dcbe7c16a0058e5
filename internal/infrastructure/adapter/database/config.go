package database

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config represents database configuration
type Config struct {
	Driver             string
	Host               string
	Port               string
	Username           string
	Password           string
	Database           string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	QueryTimeout       time.Duration
	LogLevel           string
	SlowQueryThreshold time.Duration
	RetryAttempts      int
	RetryDelay         time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns < 0 || c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max idle connections must be between 0 and %d, got: %d", c.MaxOpenConns, c.MaxIdleConns)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got: %d", c.RetryAttempts)
	}
	return nil
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.Driver == DriverMySQL {
		mysqlConfig := mysql.NewConfig()
		mysqlConfig.User = c.Username
		mysqlConfig.Passwd = c.Password
		mysqlConfig.Net = "tcp"
		mysqlConfig.Addr = net.JoinHostPort(c.Host, c.portOrDefault())
		mysqlConfig.DBName = c.Database
		mysqlConfig.ParseTime = true
		mysqlConfig.Loc = time.UTC
		if c.QueryTimeout > 0 {
			mysqlConfig.ReadTimeout = c.QueryTimeout
			mysqlConfig.WriteTimeout = c.QueryTimeout
		}
		return mysqlConfig.FormatDSN()
	}

	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.portOrDefault(), c.Username, c.Password, c.Database, sslMode,
	)
}

// RedactedDSN returns the DSN with the password masked, for logs
func (c *Config) RedactedDSN() string {
	redacted := *c
	if redacted.Password != "" {
		redacted.Password = "****"
	}
	return redacted.DSN()
}

func (c *Config) portOrDefault() string {
	if c.Port != "" {
		return c.Port
	}
	if c.Driver == DriverMySQL {
		return "3306"
	}
	return "5432"
}
