// Package server wires services, handlers and middleware into the HTTP API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"financas/internal/calendar"
	"financas/internal/config"
	"financas/internal/handlers"
	"financas/internal/middleware"
	"financas/internal/receipts"
	"financas/internal/services"

	_ "financas/internal/docs" // swagger docs
)

// Services groups the business services behind the API.
type Services struct {
	Users        services.UserServicer
	Accounts     services.AccountServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Budgets      services.BudgetServicer
	Recurring    services.RecurringServicer
	Import       services.ImportServicer
	Dashboard    services.DashboardServicer
	Reports      services.ReportServicer
	Audit        services.AuditServicer
}

// NewServices builds every service on top of db.
func NewServices(db *gorm.DB, store receipts.Store, clock calendar.Clock, cfg *config.Config) *Services {
	budgets := services.NewBudgetService(db)
	return &Services{
		Users:        services.NewUserService(db),
		Accounts:     services.NewAccountService(db),
		Categories:   services.NewCategoryService(db),
		Transactions: services.NewTransactionService(db, store, clock, cfg.MaxUploadBytes),
		Budgets:      budgets,
		Recurring:    services.NewRecurringService(db),
		Import:       services.NewImportService(db, clock, cfg.ImportDefaultAccount),
		Dashboard:    services.NewDashboardService(db, budgets),
		Reports:      services.NewReportService(db),
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter registers all routes.
func NewRouter(cfg *config.Config, svc *Services, issuer *middleware.TokenIssuer, clock calendar.Clock) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit, issuer)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Audit)
	accountHandler := handlers.NewAccountHandler(svc.Accounts, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit, cfg.MaxUploadBytes)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit, clock)
	recurringHandler := handlers.NewRecurringHandler(svc.Recurring, svc.Audit, clock)
	importHandler := handlers.NewImportHandler(svc.Import, svc.Audit, cfg.MaxUploadBytes)
	reportHandler := handlers.NewReportHandler(svc.Reports)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, clock)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)

	// Scheduler routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/recurring/generate", recurringHandler.GenerateRecurring)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(issuer))

	admin := protected.Group("/")
	admin.Use(middleware.RequireAdmin())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/password", authHandler.ChangePassword)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/:id/receipt", transactionHandler.UploadReceipt)
	transactions.GET("/:id/receipt", transactionHandler.DownloadReceipt)

	protected.GET("/categories", categoryHandler.GetCategories)
	protected.GET("/categories/:id", categoryHandler.GetCategoryByID)
	admin.POST("/categories", categoryHandler.CreateCategory)
	admin.PUT("/categories/:id", categoryHandler.UpdateCategory)

	protected.GET("/accounts", accountHandler.GetAccounts)
	protected.GET("/accounts/:id", accountHandler.GetAccountByID)
	admin.POST("/accounts", accountHandler.CreateAccount)
	admin.PUT("/accounts/:id", accountHandler.UpdateAccount)

	protected.GET("/budgets", budgetHandler.GetBudgets)
	protected.GET("/budgets/templates", budgetHandler.GetTemplates)
	protected.GET("/budgets/overrides", budgetHandler.GetOverrides)
	admin.PUT("/budgets/templates/:category_id", budgetHandler.SetTemplate)
	admin.DELETE("/budgets/templates/:category_id", budgetHandler.DeleteTemplate)
	admin.PUT("/budgets/overrides/:month/:category_id", budgetHandler.SetOverride)
	admin.DELETE("/budgets/overrides/:month/:category_id", budgetHandler.DeleteOverride)

	protected.GET("/recurring", recurringHandler.GetRecurrings)
	protected.GET("/recurring/:id", recurringHandler.GetRecurringByID)
	protected.POST("/recurring/generate", recurringHandler.GenerateRecurring)
	admin.POST("/recurring", recurringHandler.CreateRecurring)
	admin.PUT("/recurring/:id", recurringHandler.UpdateRecurring)
	admin.PATCH("/recurring/:id/active", recurringHandler.SetRecurringActive)
	admin.DELETE("/recurring/:id", recurringHandler.DeleteRecurring)

	admin.POST("/import/csv", importHandler.ImportCSV)

	protected.GET("/reports/transactions.csv", reportHandler.ExportTransactionsCSV)

	admin.GET("/users", userHandler.GetUsers)
	admin.POST("/users", userHandler.CreateUser)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
