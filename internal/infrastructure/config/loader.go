package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is prepended to every environment override, e.g. SPIN_SERVER_PORT
const EnvPrefix = "SPIN"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration for the environment named by SPIN_ENV
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = loadDotEnvFile()

	return Load(getEnvironment(), ConfigPaths...)
}

// Load reads <env>.yaml from the first matching path, applies defaults and
// environment overrides, then validates the result
func Load(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// loadDotEnvFile loads the first .env file found in the search paths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults registers every key so AutomaticEnv overrides reach Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "15s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "10s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", "30m")
	v.SetDefault("database.connMaxIdleTime", "15m")
	v.SetDefault("database.queryTimeout", "5s")
	v.SetDefault("database.retryAttempts", 5)
	v.SetDefault("database.retryDelay", "2s")
	v.SetDefault("database.slowQueryThreshold", "200ms")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.maxSizeMB", 100)
	v.SetDefault("logger.maxBackups", 5)
	v.SetDefault("logger.maxAgeDays", 14)
	v.SetDefault("logger.compress", true)

	v.SetDefault("spin.queueSize", 100)
	v.SetDefault("spin.queueTimeout", "5s")
	v.SetDefault("spin.idleTimeout", "1m")

	v.SetDefault("game.winProbability", "0.30")
	v.SetDefault("game.payoutMultiplier", "2")

	v.SetDefault("dispatcher.enabled", true)
	v.SetDefault("dispatcher.pollInterval", "500ms")
	v.SetDefault("dispatcher.batchSize", 100)
	v.SetDefault("dispatcher.initialBackoff", "200ms")
	v.SetDefault("dispatcher.maxBackoff", "30s")
	v.SetDefault("dispatcher.jitterFactor", 0.2)
	v.SetDefault("dispatcher.retention", "0s")

	v.SetDefault("bus.kind", "memory")
	v.SetDefault("bus.topic", "spin-events")
	v.SetDefault("bus.redis.addr", "")
	v.SetDefault("bus.redis.password", "")
	v.SetDefault("bus.redis.db", 0)
	v.SetDefault("bus.redis.maxLen", 100000)
	v.SetDefault("bus.redis.readBlock", "2s")
	v.SetDefault("bus.redis.dialTimeout", "5s")
	v.SetDefault("bus.redis.writeTimeout", "3s")
	v.SetDefault("bus.webhook.url", "")
	v.SetDefault("bus.webhook.timeout", "5s")
	v.SetDefault("bus.webhook.retryCount", 0)

	v.SetDefault("consumer.enabled", true)
	v.SetDefault("consumer.dedupeCacheSize", 10000)
	v.SetDefault("consumer.dedupeTTL", "1h")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:5173"})
}

// getEnvironment determines the environment to use based on SPIN_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides maps the short variable names used by deployments
// onto their configuration keys
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"SPIN_DB_DRIVER":      "database.driver",
		"SPIN_DB_HOST":        "database.host",
		"SPIN_DB_PORT":        "database.port",
		"SPIN_DB_USERNAME":    "database.username",
		"SPIN_DB_PASSWORD":    "database.password",
		"SPIN_DB_NAME":        "database.database",
		"SPIN_DB_SSL_MODE":    "database.sslMode",
		"SPIN_REDIS_ADDR":     "bus.redis.addr",
		"SPIN_REDIS_PASSWORD": "bus.redis.password",
		"SPIN_WEBHOOK_URL":    "bus.webhook.url",
		"SPIN_LOG_LEVEL":      "logger.level",
	}
	for name, key := range stringOverrides {
		if value := os.Getenv(name); value != "" {
			v.Set(key, value)
		}
	}

	if maxOpenConns := getEnvInt("SPIN_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("SPIN_DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if redisDB := getEnvInt("SPIN_REDIS_DB", -1); redisDB >= 0 {
		v.Set("bus.redis.db", redisDB)
	}
}

// getEnvInt reads an integer environment variable, falling back to defaultVal
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
