package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
)

func TestErrorClassifier_Classify(t *testing.T) {
	classifier := NewErrorClassifier()

	testCases := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"Nil", nil, ""},
		{"Record not found", gorm.ErrRecordNotFound, NotFoundError},
		{"Postgres unique violation", &pgconn.PgError{Code: "23505"}, DuplicateKeyError},
		{"Postgres serialization failure", &pgconn.PgError{Code: "40001"}, LockError},
		{"Postgres deadlock", fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), LockError},
		{"Postgres check violation", &pgconn.PgError{Code: "23514"}, ConstraintError},
		{"MySQL duplicate entry", &mysql.MySQLError{Number: 1062}, DuplicateKeyError},
		{"MySQL deadlock", &mysql.MySQLError{Number: 1213}, LockError},
		{"MySQL lock wait timeout", &mysql.MySQLError{Number: 1205}, LockError},
		{"MySQL check constraint", &mysql.MySQLError{Number: 3819}, ConstraintError},
		{"MySQL server gone away", &mysql.MySQLError{Number: 2006}, ConnectionError},
		{"MySQL invalid connection", mysql.ErrInvalidConn, ConnectionError},
		{"Gorm duplicated key", gorm.ErrDuplicatedKey, DuplicateKeyError},
		{"Message fallback duplicate", errors.New("ERROR: duplicate key value violates unique constraint"), DuplicateKeyError},
		{"Message fallback connection", errors.New("dial tcp: connection refused"), ConnectionError},
		{"Unknown", errors.New("something odd"), TransientError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.err))
		})
	}
}

func TestErrorClassifier_ToDomainError(t *testing.T) {
	classifier := NewErrorClassifier()

	t.Run("Nil stays nil", func(t *testing.T) {
		assert.NoError(t, classifier.ToDomainError(nil, errs.ErrPlayerNotFound))
	})

	t.Run("Not found uses the supplied error", func(t *testing.T) {
		err := classifier.ToDomainError(gorm.ErrRecordNotFound, errs.ErrOutboxEntryNotFound)
		assert.ErrorIs(t, err, errs.ErrOutboxEntryNotFound)
	})

	t.Run("Duplicate key", func(t *testing.T) {
		err := classifier.ToDomainError(&pgconn.PgError{Code: "23505"}, errs.ErrPlayerNotFound)
		assert.ErrorIs(t, err, errs.ErrDuplicatePlayer)
	})

	t.Run("Check constraint means the balance would go negative", func(t *testing.T) {
		err := classifier.ToDomainError(&mysql.MySQLError{Number: 3819}, errs.ErrPlayerNotFound)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})

	t.Run("Lock conflicts are transient", func(t *testing.T) {
		err := classifier.ToDomainError(&pgconn.PgError{Code: "40001"}, errs.ErrPlayerNotFound)
		assert.ErrorIs(t, err, errs.ErrTransientStore)
		assert.True(t, errs.IsTransientStoreError(err))
	})

	t.Run("Context errors pass through", func(t *testing.T) {
		err := classifier.ToDomainError(fmt.Errorf("query: %w", context.DeadlineExceeded), errs.ErrPlayerNotFound)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotErrorIs(t, err, errs.ErrTransientStore)
	})
}
