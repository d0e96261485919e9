// Command migrate manages the PostgreSQL schema of the finance ledger
// (users, categories, accounts, transactions, budgets, recurring runs and
// the audit log). A sqlite database is migrated by the API on startup and
// is not handled here.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"financas/internal/config"
	"financas/internal/database"
	"financas/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const usage = "usage: migrate <up|down|version> [N]"

// command is a parsed invocation. Steps only applies to down.
type command struct {
	Name  string
	Steps int
}

// schema is the part of *migrate.Migrate the commands use.
type schema interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func parseArgs(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New(usage)
	}
	cmd := command{Name: args[0]}
	switch cmd.Name {
	case "up", "version":
		if len(args) > 1 {
			return command{}, fmt.Errorf("%s takes no arguments; %s", cmd.Name, usage)
		}
	case "down":
		cmd.Steps = 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return command{}, fmt.Errorf("invalid step count %q: must be a positive integer", args[1])
			}
			cmd.Steps = n
		}
	default:
		return command{}, fmt.Errorf("unknown command: %s (use up, down, or version)", cmd.Name)
	}
	return cmd, nil
}

func run(args []string) error {
	cmd, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.UsesPostgres() {
		return errors.New("DATABASE_URL must point at PostgreSQL; sqlite is migrated by the API on startup")
	}

	m, err := migrate.New(database.MigrationsSource, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnw("migrate source close error", "error", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnw("migrate database close error", "error", dbErr)
		}
	}()

	return execute(m, cmd)
}

func execute(s schema, cmd command) error {
	log := logger.Named("migrate")

	switch cmd.Name {
	case "up":
		if err := s.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info("Ledger schema is up to date")

	case "down":
		if err := s.Steps(-cmd.Steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Infow("Rolled back ledger schema", "steps", cmd.Steps)

	case "version":
		version, dirty, err := s.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("No migrations applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		if dirty {
			log.Warnw("Schema is dirty; fix the failed migration and force the version", "version", version)
			return nil
		}
		log.Infow("Ledger schema version", "version", version)
	}
	return nil
}
