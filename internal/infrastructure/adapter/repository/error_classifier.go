package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
	NotFoundError     ErrorType = "not_found"
)

// Postgres SQLSTATE codes
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
)

// MySQL server error numbers
const (
	mysqlDuplicateEntry  = 1062
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
	mysqlCheckConstraint = 3819
	mysqlServerGoneAway  = 2006
	mysqlLostConnection  = 2013
)

// ErrorClassifier maps driver errors onto domain errors
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFoundError
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsConstraintError(err):
		return ConstraintError
	case c.IsConnectionError(err):
		return ConnectionError
	default:
		return TransientError
	}
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgUniqueViolation
	}
	if number, ok := mysqlNumber(err); ok {
		return number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "Duplicate entry")
}

// IsLockError checks if the error is due to locking or serialization conflicts
func (c *ErrorClassifier) IsLockError(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgSerializationFailure || code == pgDeadlockDetected || code == pgLockNotAvailable
	}
	if number, ok := mysqlNumber(err); ok {
		return number == mysqlDeadlock || number == mysqlLockWaitTimeout
	}
	return strings.Contains(err.Error(), "deadlock") ||
		strings.Contains(err.Error(), "lock wait timeout") ||
		strings.Contains(err.Error(), "could not serialize access")
}

// IsConstraintError checks if the error is a check constraint violation
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgCheckViolation
	}
	if number, ok := mysqlNumber(err); ok {
		return number == mysqlCheckConstraint
	}
	return false
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if number, ok := mysqlNumber(err); ok {
		return number == mysqlServerGoneAway || number == mysqlLostConnection
	}
	if errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	message := err.Error()
	return strings.Contains(message, "connection refused") ||
		strings.Contains(message, "connection reset") ||
		strings.Contains(message, "broken pipe") ||
		strings.Contains(message, "EOF")
}

// ToDomainError converts a database error into the domain taxonomy.
// Context cancellation passes through unchanged.
func (c *ErrorClassifier) ToDomainError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch c.Classify(err) {
	case NotFoundError:
		return notFound
	case DuplicateKeyError:
		return fmt.Errorf("%w: %s", errs.ErrDuplicatePlayer, err.Error())
	case ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrInsufficientFunds, err.Error())
	default:
		return fmt.Errorf("%w: %s", errs.ErrTransientStore, err.Error())
	}
}

func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

func mysqlNumber(err error) (uint16, bool) {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number, true
	}
	return 0, false
}
