package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	timeadapter "github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/time"
	coremocks "github.com/amirhossein-jamali/spin-engine/mocks/port/core"
)

func newLoggerUnderTest(t *testing.T, level string) (*DatabaseLogger, *coremocks.MockLogger) {
	t.Helper()
	coreLogger := coremocks.NewMockLogger(t)
	coreLogger.EXPECT().With(mock.Anything).Return(coreLogger)

	dbLogger := NewDatabaseLogger(coreLogger, timeadapter.NewRealTimeProvider(), level, 100*time.Millisecond)
	return dbLogger.(*DatabaseLogger), coreLogger
}

func TestDatabaseLogger_TraceLevels(t *testing.T) {
	query := func() (string, int64) { return `SELECT * FROM "players" WHERE id = 'p1'`, 1 }

	t.Run("regular query at debug", func(t *testing.T) {
		dbLogger, coreLogger := newLoggerUnderTest(t, "info")
		coreLogger.EXPECT().Debug("SQL Query", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["type"] == "SELECT" && fields["table"] == "players"
		})).Once()

		dbLogger.Trace(context.Background(), time.Now(), query, nil)
	})

	t.Run("slow query at warn", func(t *testing.T) {
		dbLogger, coreLogger := newLoggerUnderTest(t, "warn")
		coreLogger.EXPECT().Warn("Slow SQL Query", mock.Anything).Once()

		dbLogger.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	})

	t.Run("failure at error", func(t *testing.T) {
		dbLogger, coreLogger := newLoggerUnderTest(t, "error")
		coreLogger.EXPECT().Error("SQL Error", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["error"] == "boom"
		})).Once()

		dbLogger.Trace(context.Background(), time.Now(), query, errors.New("boom"))
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		dbLogger, _ := newLoggerUnderTest(t, "error")
		dbLogger.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	})

	t.Run("silent", func(t *testing.T) {
		dbLogger, _ := newLoggerUnderTest(t, "silent")
		dbLogger.Trace(context.Background(), time.Now(), query, errors.New("boom"))
	})
}

func TestDatabaseLogger_LogMode(t *testing.T) {
	dbLogger, _ := newLoggerUnderTest(t, "info")
	silenced := dbLogger.LogMode(logger.Silent).(*DatabaseLogger)

	assert.Equal(t, logger.Silent, silenced.logLevel)
	assert.Equal(t, logger.Info, dbLogger.logLevel)
}

func TestExtractQueryTypeAndTable(t *testing.T) {
	assert.Equal(t, "INSERT", extractQueryType(`INSERT INTO "outbox_entries" ("topic") VALUES ('x')`))
	assert.Equal(t, "outbox_entries", extractTableName(`INSERT INTO "outbox_entries" ("topic") VALUES ('x')`))
	assert.Equal(t, "players", extractTableName("UPDATE `players` SET balance = 1"))
	assert.Equal(t, "", extractQueryType("BEGIN"))
	assert.Equal(t, "", extractTableName("BEGIN"))
}
