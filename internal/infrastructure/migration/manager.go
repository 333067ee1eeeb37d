package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/locationgenius/dashboard/internal/shared/logger"
)

// Strategy applies the schema to a database.
type Strategy interface {
	Migrate(ctx context.Context, db *gorm.DB) error
	GetName() string
}

type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager selects goose with the dialect matching the database driver.
func NewManager(driver string, log logger.Interface) (*Manager, error) {
	dialect, err := DialectForDriver(driver)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(NewGooseStrategy(dialect, log), log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
