package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/persistence"
)

type contextKey string

const txKey contextKey = "memory-tx"

// tx buffers writes until commit. Players read with GetForUpdate stay
// locked until the transaction ends.
type tx struct {
	mu       sync.Mutex
	locked   []string
	versions map[string]uint64 // version seen when each staged player was read
	players  map[string]*entity.Player
	created  map[string]*entity.Player
	outbox   []*entity.OutboxEntry
	done     bool
}

func newTx() *tx {
	return &tx{
		versions: make(map[string]uint64),
		players:  make(map[string]*entity.Player),
		created:  make(map[string]*entity.Player),
	}
}

// UnitOfWork implements persistence.UnitOfWork on top of a Store
type UnitOfWork struct {
	store  *Store
	logger coreport.Logger
}

// NewUnitOfWork creates a unit of work over store
func NewUnitOfWork(store *Store, logger coreport.Logger) persistence.UnitOfWork {
	return &UnitOfWork{store: store, logger: logger}
}

// Begin starts a transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, txKey, newTx()), nil
}

// Commit applies staged writes atomically. A player whose version moved
// since it was read fails the whole transaction with ErrTransientStore.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	t, ok := txFromContext(ctx)
	if !ok {
		return fmt.Errorf("no transaction found in context")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return fmt.Errorf("transaction has already been committed or rolled back")
	}
	defer u.finish(t)

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range t.created {
		if _, exists := s.players[id]; exists {
			return errs.ErrDuplicatePlayer
		}
	}
	for id, player := range t.players {
		current, exists := s.players[id]
		if !exists {
			if _, isNew := t.created[id]; isNew {
				continue
			}
			return fmt.Errorf("%w: player %s disappeared", errs.ErrTransientStore, id)
		}
		if current.Version != t.versions[id] {
			u.logger.Warn("Version conflict on commit", map[string]any{
				"player_id": id,
				"expected":  t.versions[id],
				"actual":    current.Version,
				"staged":    player.Version,
			})
			return fmt.Errorf("%w: player %s was modified concurrently", errs.ErrTransientStore, id)
		}
	}

	for id, player := range t.created {
		s.players[id] = clonePlayer(player)
	}
	for id, player := range t.players {
		s.players[id] = clonePlayer(player)
	}
	for _, entry := range t.outbox {
		s.outbox[entry.Sequence] = cloneEntry(entry)
	}
	return nil
}

// Rollback discards staged writes. Rolling back a finished transaction is a no-op.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	t, ok := txFromContext(ctx)
	if !ok {
		return fmt.Errorf("no transaction found in context")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	u.finish(t)
	return nil
}

// finish releases row locks; t.mu must be held
func (u *UnitOfWork) finish(t *tx) {
	t.done = true
	for _, id := range t.locked {
		u.store.unlockPlayer(id)
	}
	t.locked = nil
}

// GetPlayerRepository returns a player repository bound to the current transaction
func (u *UnitOfWork) GetPlayerRepository(ctx context.Context) persistence.PlayerRepository {
	t, _ := txFromContext(ctx)
	return &PlayerRepository{store: u.store, tx: t}
}

// GetOutboxRepository returns an outbox repository bound to the current transaction
func (u *UnitOfWork) GetOutboxRepository(ctx context.Context) persistence.OutboxRepository {
	t, _ := txFromContext(ctx)
	return &OutboxRepository{store: u.store, tx: t}
}

func txFromContext(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey).(*tx)
	return t, ok && t != nil
}
