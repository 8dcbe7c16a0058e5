package memory

import (
	"context"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
)

// PlayerRepository reads committed players and stages writes in the
// surrounding transaction when there is one
type PlayerRepository struct {
	store *Store
	tx    *tx
}

// GetByID returns the player as seen by the current transaction
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.tx != nil {
		r.tx.mu.Lock()
		defer r.tx.mu.Unlock()
		if staged := r.tx.staged(id); staged != nil {
			return clonePlayer(staged), nil
		}
	}

	player, ok := r.store.getPlayer(id)
	if !ok {
		return nil, errs.ErrPlayerNotFound
	}
	if r.tx != nil {
		if _, seen := r.tx.versions[id]; !seen {
			r.tx.versions[id] = player.Version
		}
	}
	return player, nil
}

// GetForUpdate takes the player's row lock for the rest of the transaction.
// Outside a transaction it is a plain read.
func (r *PlayerRepository) GetForUpdate(ctx context.Context, id string) (*entity.Player, error) {
	if r.tx == nil {
		return r.GetByID(ctx, id)
	}

	r.tx.mu.Lock()
	if r.tx.done {
		r.tx.mu.Unlock()
		return nil, errs.ErrTransientStore
	}
	held := r.tx.holds(id)
	r.tx.mu.Unlock()

	if !held {
		if err := r.store.lockPlayer(ctx, id); err != nil {
			return nil, err
		}
	}

	r.tx.mu.Lock()
	defer r.tx.mu.Unlock()

	if r.tx.done {
		// finished while we were waiting
		if !held {
			r.store.unlockPlayer(id)
		}
		return nil, errs.ErrTransientStore
	}
	if !held {
		r.tx.locked = append(r.tx.locked, id)
	}

	if staged := r.tx.staged(id); staged != nil {
		return clonePlayer(staged), nil
	}

	player, ok := r.store.getPlayer(id)
	if !ok {
		return nil, errs.ErrPlayerNotFound
	}
	if _, seen := r.tx.versions[id]; !seen {
		r.tx.versions[id] = player.Version
	}
	return player, nil
}

// Create stores a new player
func (r *PlayerRepository) Create(ctx context.Context, player *entity.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.tx != nil {
		r.tx.mu.Lock()
		defer r.tx.mu.Unlock()
		if _, exists := r.store.getPlayer(player.ID); exists || r.tx.created[player.ID] != nil {
			return errs.ErrDuplicatePlayer
		}
		r.tx.created[player.ID] = clonePlayer(player)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.players[player.ID]; exists {
		return errs.ErrDuplicatePlayer
	}
	r.store.players[player.ID] = clonePlayer(player)
	return nil
}

// Update persists the player's balance, version and spin count
func (r *PlayerRepository) Update(ctx context.Context, player *entity.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.tx != nil {
		r.tx.mu.Lock()
		defer r.tx.mu.Unlock()

		if created := r.tx.created[player.ID]; created != nil {
			r.tx.created[player.ID] = clonePlayer(player)
			return nil
		}
		if _, seen := r.tx.versions[player.ID]; !seen {
			current, ok := r.store.getPlayer(player.ID)
			if !ok {
				return errs.ErrPlayerNotFound
			}
			r.tx.versions[player.ID] = current.Version
		}
		r.tx.players[player.ID] = clonePlayer(player)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.players[player.ID]; !exists {
		return errs.ErrPlayerNotFound
	}
	r.store.players[player.ID] = clonePlayer(player)
	return nil
}

// staged returns the transaction's pending copy of a player; t.mu must be held
func (t *tx) staged(id string) *entity.Player {
	if player := t.players[id]; player != nil {
		return player
	}
	return t.created[id]
}

// holds reports whether the transaction owns id's row lock; t.mu must be held
func (t *tx) holds(id string) bool {
	for _, locked := range t.locked {
		if locked == id {
			return true
		}
	}
	return false
}
