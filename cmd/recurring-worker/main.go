// Command recurring-worker materializes recurring transactions for the
// current month on startup and then on every RECURRING_INTERVAL tick.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financas/internal/calendar"
	"financas/internal/config"
	"financas/internal/database"
	"financas/internal/logger"
	"financas/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Named("recurring-worker")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recurring := services.NewRecurringService(dbManager.DB())
	clock := calendar.SystemClock{}

	generate := func() {
		month := calendar.CurrentMonth(clock)
		summary, err := recurring.GenerateForMonth(month)
		if err != nil {
			log.Errorw("Recurring generation failed", "month", month.String(), "error", err)
			return
		}
		log.Infow("Recurring generation done",
			"month", summary.Month,
			"generated", summary.Generated,
			"skipped", summary.Skipped,
		)
	}

	log.Infow("Recurring worker started", "interval", cfg.RecurringInterval.String())
	generate()

	ticker := time.NewTicker(cfg.RecurringInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Recurring worker stopping")
			return nil
		case <-ticker.C:
			generate()
		}
	}
}
