package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Spin        SpinConfig       `mapstructure:"spin"`
	Game        GameConfig       `mapstructure:"game"`
	Dispatcher  DispatcherConfig `mapstructure:"dispatcher"`
	Bus         BusConfig        `mapstructure:"bus"`
	Consumer    ConsumerConfig   `mapstructure:"consumer"`
	Metrics     MetricsConfig    `mapstructure:"metrics"`
	CORS        CORSConfig       `mapstructure:"cors"`
	Seed        SeedConfig       `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout" validate:"gt=0"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout" validate:"gt=0"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout" validate:"gt=0"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver" validate:"oneof=postgres mysql memory"`
	Host               string        `mapstructure:"host" validate:"required_unless=Driver memory"`
	Port               string        `mapstructure:"port"`
	Username           string        `mapstructure:"username" validate:"required_unless=Driver memory"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database" validate:"required_unless=Driver memory"`
	SSLMode            string        `mapstructure:"sslMode"`
	MaxOpenConns       int           `mapstructure:"maxOpenConns" validate:"min=1"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns" validate:"min=0"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout       time.Duration `mapstructure:"queryTimeout"`
	RetryAttempts      int           `mapstructure:"retryAttempts" validate:"min=1"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"`
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	Output     string `mapstructure:"output" validate:"required"` // "stdout" or a file path
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	Compress   bool   `mapstructure:"compress"`
}

// SpinConfig contains per-player queue settings
type SpinConfig struct {
	QueueSize    int           `mapstructure:"queueSize" validate:"min=1"`
	QueueTimeout time.Duration `mapstructure:"queueTimeout" validate:"gt=0"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout" validate:"gt=0"`
}

// GameConfig holds the odds; values are decimal strings
type GameConfig struct {
	WinProbability   string `mapstructure:"winProbability" validate:"required,numeric"`
	PayoutMultiplier string `mapstructure:"payoutMultiplier" validate:"required,numeric"`
}

// DispatcherConfig controls outbox draining
type DispatcherConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	PollInterval   time.Duration `mapstructure:"pollInterval" validate:"gt=0"`
	BatchSize      int           `mapstructure:"batchSize" validate:"min=1,max=10000"`
	InitialBackoff time.Duration `mapstructure:"initialBackoff" validate:"gt=0"`
	MaxBackoff     time.Duration `mapstructure:"maxBackoff" validate:"gtefield=InitialBackoff"`
	JitterFactor   float64       `mapstructure:"jitterFactor" validate:"min=0,max=1"`
	Retention      time.Duration `mapstructure:"retention"` // 0 keeps delivered entries forever
}

// BusConfig selects and configures the event bus
type BusConfig struct {
	Kind    string        `mapstructure:"kind" validate:"oneof=memory redis webhook"`
	Topic   string        `mapstructure:"topic" validate:"required"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// RedisConfig configures the Redis stream transport
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db" validate:"min=0"`
	MaxLen       int64         `mapstructure:"maxLen" validate:"min=0"`
	ReadBlock    time.Duration `mapstructure:"readBlock"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

// WebhookConfig configures the HTTP transport
type WebhookConfig struct {
	URL        string            `mapstructure:"url" validate:"omitempty,url"`
	Timeout    time.Duration     `mapstructure:"timeout"`
	RetryCount int               `mapstructure:"retryCount" validate:"min=0"`
	Headers    map[string]string `mapstructure:"headers"`
}

// ConsumerConfig configures the in-process spin event consumer
type ConsumerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DedupeCacheSize int           `mapstructure:"dedupeCacheSize" validate:"min=1"`
	DedupeTTL       time.Duration `mapstructure:"dedupeTTL" validate:"gt=0"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// CORSConfig lists browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// SeedConfig lists opening balances of players created at startup
type SeedConfig struct {
	Players []int64 `mapstructure:"players" validate:"dive,min=0"`
}
