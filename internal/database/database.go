package database

import (
	"fmt"
	"time"

	"financas/internal/config"
	"financas/internal/logger"
	"financas/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

// MigrationsSource is the golang-migrate source for the PostgreSQL schema.
const MigrationsSource = "file://migrations"

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	target Target
}

// NewManager opens the configured database and sizes its connection pool.
func NewManager(cfg *config.Config) (*Manager, error) {
	target, err := ResolveTarget(cfg)
	if err != nil {
		return nil, err
	}
	return Open(target, cfg.DBPoolSize, cfg.MaxOpenConns())
}

// Open connects to target with the given pool limits.
func Open(target Target, maxIdle, maxOpen int) (*Manager, error) {
	dialector, err := target.Dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &Manager{db: db, target: target}, nil
}

// Migrate brings the schema up to date. PostgreSQL uses the versioned SQL
// migrations; sqlite is migrated from the models.
func (m *Manager) Migrate() error {
	if m.target.Dialect == DialectPostgres {
		return m.RunMigrations()
	}

	logger.Get().Infow("Auto-migrating sqlite schema", "path", m.target.DSN)
	if err := m.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

// RunMigrations applies pending SQL migrations from the migrations/ directory.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New(MigrationsSource, m.target.DSN)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Dialect returns the backend in use.
func (m *Manager) Dialect() Dialect {
	return m.target.Dialect
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
