package logger

import (
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// NoopLogger implements the Logger interface but discards every entry
type NoopLogger struct {
	level core.LogLevel
}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() core.Logger {
	return &NoopLogger{
		level: core.LogLevelInfo,
	}
}

// SetLevel sets the minimum log level to output
func (l *NoopLogger) SetLevel(level core.LogLevel) {
	l.level = level
}

// GetLevel gets the current log level
func (l *NoopLogger) GetLevel() core.LogLevel {
	return l.level
}

func (l *NoopLogger) Debug(string, map[string]any) {}

func (l *NoopLogger) Info(string, map[string]any) {}

func (l *NoopLogger) Warn(string, map[string]any) {}

func (l *NoopLogger) Error(string, map[string]any) {}

// With returns the same logger
func (l *NoopLogger) With(map[string]any) core.Logger {
	return l
}

// Flush is a no-op
func (l *NoopLogger) Flush() error {
	return nil
}
