package main

import (
	"context"
	"fmt"
	"os"

	"financas/internal/calendar"
	"financas/internal/config"
	"financas/internal/database"
	"financas/internal/logger"
	"financas/internal/middleware"
	"financas/internal/receipts"
	"financas/internal/server"
	"financas/internal/validator"
)

// @title           Finanças API
// @version         1.0
// @description     Household finance tracker: transactions, monthly budgets, recurring entries and statement imports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey PipelineKey
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := database.Seed(dbManager.DB(), database.SeedOptions{
		AdminPassword: appConfig.SeedAdminPassword,
		UserPassword:  appConfig.SeedUserPassword,
	}); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	store, err := receipts.NewStore(context.Background(), appConfig)
	if err != nil {
		return fmt.Errorf("failed to create receipt store: %w", err)
	}

	validator.Register()

	clock := calendar.SystemClock{}
	issuer := middleware.NewTokenIssuer(appConfig.JWTSecret, appConfig.JWTExpirationDur)
	svc := server.NewServices(dbManager.DB(), store, clock, appConfig)
	router := server.NewRouter(appConfig, svc, issuer, clock)

	log.Infow("Starting Finanças backend server",
		"port", appConfig.Port,
		"database", dbManager.Dialect(),
		"receipts", appConfig.ReceiptBackend,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
