package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"financas/internal/config"
)

// Dialect names the SQL backend in use.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Target describes where the database lives.
type Target struct {
	Dialect Dialect
	DSN     string
}

// ResolveTarget picks the backend from configuration. A PostgreSQL
// DATABASE_URL wins; otherwise a sqlite file is used (refused in production
// by config validation).
func ResolveTarget(cfg *config.Config) (Target, error) {
	switch {
	case cfg.UsesPostgres():
		return Target{Dialect: DialectPostgres, DSN: cfg.DatabaseURL}, nil
	case strings.HasPrefix(cfg.DatabaseURL, "sqlite://"):
		return Target{Dialect: DialectSQLite, DSN: strings.TrimPrefix(cfg.DatabaseURL, "sqlite://")}, nil
	case cfg.DatabaseURL == "":
		if cfg.IsProduction() {
			return Target{}, fmt.Errorf("sqlite is not allowed in production")
		}
		return Target{Dialect: DialectSQLite, DSN: cfg.SQLitePath}, nil
	default:
		return Target{}, fmt.Errorf("unsupported DATABASE_URL")
	}
}

// Dialector returns the gorm dialector for the target.
func (t Target) Dialector() (gorm.Dialector, error) {
	switch t.Dialect {
	case DialectPostgres:
		return postgres.New(postgres.Config{
			DSN:                  t.DSN,
			PreferSimpleProtocol: true, // Required for Supabase Supavisor; harmless for direct connections
		}), nil
	case DialectSQLite:
		if !strings.HasPrefix(t.DSN, "file:") && t.DSN != ":memory:" {
			if dir := filepath.Dir(t.DSN); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
				}
			}
		}
		return sqlite.Open(t.DSN), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", t.Dialect)
	}
}
