// Package migration applies the schema either through versioned goose
// scripts embedded in the binary or through gorm AutoMigrate.
package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

//go:embed scripts/*/*.sql
var scripts embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// GooseStrategy runs the embedded SQL scripts for one dialect.
type GooseStrategy struct {
	dialect string
	logger  logger.Interface
}

// NewGooseStrategy accepts the database driver name from config ("mysql" or "sqlite").
func NewGooseStrategy(driver string) (*GooseStrategy, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	return &GooseStrategy{
		dialect: dialect,
		logger:  logger.NewLogger().With("component", "migration.goose"),
	}, nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql", nil
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migration scripts for driver %q", driver)
	}
}

func (s *GooseStrategy) dir() string {
	return "scripts/" + s.dialect
}

func (s *GooseStrategy) prepare() error {
	goose.SetBaseFS(scripts)
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, s.dir()); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"dialect", s.dialect,
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, s.dir()); err != nil {
			s.logger.Errorw("down migration failed", "step", i+1, "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(sqlDB)
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}
	if err := goose.Status(sqlDB, s.dir()); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

// AutoMigrateStrategy lets gorm derive the schema from the models. Used for
// local development and tests.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy() *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: logger.NewLogger().With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm-automigrate"
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	if err := db.AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migrate failed", "error", err)
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	s.logger.Infow("auto migrate completed", "models_count", len(all))
	return nil
}

// ForEnvironment picks AutoMigrate for development and goose elsewhere.
func ForEnvironment(env, driver string) (Strategy, error) {
	if env == "development" || env == "debug" {
		return NewAutoMigrateStrategy(), nil
	}
	return NewGooseStrategy(driver)
}
