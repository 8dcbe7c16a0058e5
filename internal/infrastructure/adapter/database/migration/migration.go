package migration

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/model"
)

// Step is one versioned schema change
type Step struct {
	Version     string
	Description string
	Apply       func(ctx context.Context, db *gorm.DB) error
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	steps        []Step
}

// NewMigrationManager creates a migration manager with the built-in steps
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		steps:        Steps(),
	}
}

// Steps returns the schema history in the order it must be applied
func Steps() []Step {
	return []Step{
		{
			Version:     "1.0.0",
			Description: "players and outbox tables",
			Apply: func(ctx context.Context, db *gorm.DB) error {
				return db.WithContext(ctx).AutoMigrate(&model.Player{}, &model.OutboxEntry{})
			},
		},
		{
			Version:     "1.1.0",
			Description: "spin counter on players",
			Apply:       addSpinCount,
		},
		{
			Version:     "1.2.0",
			Description: "partial index on pending outbox entries",
			Apply:       createPendingOutboxIndex,
		},
	}
}

// CurrentSchemaVersion is the version reached after every step has run
func CurrentSchemaVersion() string {
	steps := Steps()
	return steps[len(steps)-1].Version
}

// MigrateAll applies every step newer than the recorded version
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		return fmt.Errorf("create migration version table: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}

	pending := 0
	for _, step := range m.steps {
		if applied[step.Version] {
			continue
		}
		pending++

		m.logger.Info("Applying migration", map[string]any{
			"version":     step.Version,
			"description": step.Description,
		})
		if err := step.Apply(ctx, m.db); err != nil {
			m.logger.Error("Migration failed", map[string]any{
				"version": step.Version,
				"error":   err.Error(),
			})
			return fmt.Errorf("migration %s: %w", step.Version, err)
		}
		if err := m.setVersion(ctx, step); err != nil {
			return fmt.Errorf("record migration %s: %w", step.Version, err)
		}
	}

	m.logger.Info("Database schema up to date", map[string]any{
		"version": m.steps[len(m.steps)-1].Version,
		"applied": pending,
	})
	return nil
}

// GetCurrentVersion returns the most recently applied version, or "" for a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var version model.MigrationVersion
	err := m.db.WithContext(ctx).Order("id desc").First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return version.Version, nil
}

func (m *MigrationManager) appliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []model.MigrationVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version.Version] = true
	}
	return applied, nil
}

func (m *MigrationManager) setVersion(ctx context.Context, step Step) error {
	return m.db.WithContext(ctx).Create(&model.MigrationVersion{
		Version:     step.Version,
		Description: step.Description,
		AppliedAt:   m.timeProvider.Now(),
	}).Error
}
