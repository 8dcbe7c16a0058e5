package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/model"
)

// PlayerRepository implements PlayerRepository interface using GORM
type PlayerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPlayerRepository creates a new PlayerRepository instance
func NewPlayerRepository(db *gorm.DB, logger coreport.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func modelToPlayer(m *model.Player) *entity.Player {
	return entity.RestorePlayer(m.ID, m.Balance, m.Version, m.SpinCount, m.CreatedAt, m.UpdatedAt)
}

func playerToModel(p *entity.Player) model.Player {
	return model.Player{
		ID:        p.ID,
		Balance:   p.Balance(),
		Version:   p.Version,
		SpinCount: p.SpinCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *PlayerRepository) handleDatabaseError(operation string, err error, playerID string) error {
	mapped := r.errorClassifier.ToDomainError(err, errs.ErrPlayerNotFound)

	fields := map[string]any{
		"player_id":  playerID,
		"operation":  operation,
		"error":      err.Error(),
		"error_type": string(r.errorClassifier.Classify(err)),
	}
	if errs.IsClientError(mapped) {
		r.logger.Debug("Player query rejected", fields)
	} else {
		r.logger.Error("Database error on player", fields)
	}
	return mapped
}

// GetByID retrieves a player without locking
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	var playerModel model.Player
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&playerModel).Error; err != nil {
		return nil, r.handleDatabaseError("get", err, id)
	}
	return modelToPlayer(&playerModel), nil
}

// GetForUpdate reads the player with SELECT ... FOR UPDATE.
// The row lock lasts until the surrounding transaction ends.
func (r *PlayerRepository) GetForUpdate(ctx context.Context, id string) (*entity.Player, error) {
	var playerModel model.Player
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&playerModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("lock", err, id)
	}

	r.logger.Debug("Player locked", map[string]any{
		"player_id": id,
		"balance":   playerModel.Balance,
		"version":   playerModel.Version,
	})
	return modelToPlayer(&playerModel), nil
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, player *entity.Player) error {
	playerModel := playerToModel(player)
	if err := r.db.WithContext(ctx).Create(&playerModel).Error; err != nil {
		return r.handleDatabaseError("create", err, player.ID)
	}
	return nil
}

// Update writes the player back. The row is only written while the stored
// version is older than the entity's, so a stale copy can never overwrite a newer one.
func (r *PlayerRepository) Update(ctx context.Context, player *entity.Player) error {
	result := r.db.WithContext(ctx).Model(&model.Player{}).
		Where("id = ? AND version < ?", player.ID, player.Version).
		Updates(map[string]any{
			"balance":    player.Balance(),
			"version":    player.Version,
			"spin_count": player.SpinCount,
			"updated_at": player.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("update", result.Error, player.ID)
	}

	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, player.ID); err != nil {
			return err
		}
		r.logger.Warn("Player version moved during update", map[string]any{
			"player_id": player.ID,
			"version":   player.Version,
		})
		return errs.ErrTransientStore
	}
	return nil
}
