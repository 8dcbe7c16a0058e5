package persistence

import (
	"context"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
)

// PlayerRepository defines the methods needed to read and mutate player balances
type PlayerRepository interface {
	// GetByID retrieves a player by ID without locking
	// Used for the GET /api/balance/{playerId} endpoint
	//
	// Possible errors:
	// - ErrPlayerNotFound: If player with specified ID doesn't exist
	// - ErrTransientStore: If the store is unavailable
	GetByID(ctx context.Context, id string) (*entity.Player, error)

	// GetForUpdate retrieves a player and holds an exclusive lock on it until
	// the surrounding unit of work ends
	//
	// Possible errors:
	// - ErrPlayerNotFound: If player with specified ID doesn't exist
	// - ErrTransientStore: If the lock could not be taken
	GetForUpdate(ctx context.Context, id string) (*entity.Player, error)

	// Create stores a new player
	//
	// Possible errors:
	// - ErrDuplicatePlayer: If a player with the same ID already exists
	// - ErrTransientStore: If the store is unavailable
	Create(ctx context.Context, player *entity.Player) error

	// Update persists balance, version and spin count of an existing player
	//
	// Possible errors:
	// - ErrPlayerNotFound: If player doesn't exist
	// - ErrTransientStore: If the row changed concurrently or the store is unavailable
	Update(ctx context.Context, player *entity.Player) error
}
