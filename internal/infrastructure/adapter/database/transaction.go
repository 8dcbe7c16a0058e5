package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions.
// Row locks taken with SELECT ... FOR UPDATE serialize writers per player,
// so READ COMMITTED is sufficient.
type UnitOfWork struct {
	db         *gorm.DB
	logger     coreport.Logger
	classifier *repository.ErrorClassifier
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger) persistence.UnitOfWork {
	return &UnitOfWork{
		db:         db,
		logger:     logger,
		classifier: repository.NewErrorClassifier(),
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, u.classifier.ToDomainError(tx.Error, errs.ErrTransientStore)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("%w: commit: %s", errs.ErrTransientStore, err.Error())
	}
	return nil
}

// Rollback rolls back the current transaction. Rolling back a finished
// transaction is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}

	u.logger.Error("Failed to rollback transaction", map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("failed to rollback transaction: %w", err)
}

// GetPlayerRepository returns a player repository in the current transaction
func (u *UnitOfWork) GetPlayerRepository(ctx context.Context) persistence.PlayerRepository {
	return repository.NewPlayerRepository(u.getDbFromContext(ctx), u.logger)
}

// GetOutboxRepository returns an outbox repository in the current transaction
func (u *UnitOfWork) GetOutboxRepository(ctx context.Context) persistence.OutboxRepository {
	return repository.NewOutboxRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
