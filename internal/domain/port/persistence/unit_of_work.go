package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency.
// A balance change and its outbox entry become durable together or not at all.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	//
	// Possible errors:
	// - ErrTransientStore: If the store could not make the transaction durable
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetPlayerRepository returns a player repository bound to the current transaction
	GetPlayerRepository(ctx context.Context) PlayerRepository

	// GetOutboxRepository returns an outbox repository bound to the current transaction
	GetOutboxRepository(ctx context.Context) OutboxRepository
}
