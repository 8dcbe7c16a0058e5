package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(driver string) *Config {
	return &Config{
		Driver:        driver,
		Host:          "db.local",
		Username:      "spin",
		Password:      "secret",
		Database:      "spins",
		MaxOpenConns:  10,
		MaxIdleConns:  5,
		RetryAttempts: 1,
	}
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := validConfig(DriverPostgres)
	require.NoError(t, cfg.Validate())

	assert.Equal(t,
		"host=db.local port=5432 user=spin password=secret dbname=spins sslmode=disable TimeZone=UTC",
		cfg.DSN())
	assert.Contains(t, cfg.RedactedDSN(), "password=****")
	assert.Equal(t, "secret", cfg.Password)
}

func TestConfig_MySQLDSN(t *testing.T) {
	cfg := validConfig(DriverMySQL)
	cfg.QueryTimeout = 3 * time.Second

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "spin:secret@tcp(db.local:3306)/spins")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "readTimeout=3s")
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Driver = "sqlite" }},
		{"missing host", func(c *Config) { c.Host = "" }},
		{"missing username", func(c *Config) { c.Username = "" }},
		{"missing database", func(c *Config) { c.Database = "" }},
		{"no connections", func(c *Config) { c.MaxOpenConns = 0 }},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 11 }},
		{"no attempts", func(c *Config) { c.RetryAttempts = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(DriverPostgres)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
