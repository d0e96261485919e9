package services

import (
	"context"
	"io"
	"time"

	"financas/internal/calendar"
	"financas/internal/models"
	"financas/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, name, password string, role models.UserRole) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUsers() ([]models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
}

// AccountUpdateFields holds the optional fields for updating an account.
type AccountUpdateFields struct {
	Name     *string
	Kind     *models.AccountKind
	IsActive *bool
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name string, kind models.AccountKind) (*models.Account, error)
	GetAccounts(activeOnly *bool) ([]models.Account, error)
	GetAccountByID(accountID string) (*models.Account, error)
	UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error)
}

// CategoryUpdateFields holds the optional fields for updating a category.
type CategoryUpdateFields struct {
	Name     *string
	Kind     *models.CategoryKind
	IsActive *bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, kind models.CategoryKind) (*models.Category, error)
	GetCategories(kind *models.CategoryKind, activeOnly *bool) ([]models.Category, error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID string, fields CategoryUpdateFields) (*models.Category, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Month      *calendar.Month
	Type       *models.TransactionType
	CategoryID *string
	AccountID  *string
	Search     string
}

// TransactionInput carries the fields of a transaction being created or
// replaced.
type TransactionInput struct {
	Date        time.Time
	Type        models.TransactionType
	CategoryID  string
	AccountID   string
	Amount      float64
	Description string
}

// Receipt is an opened receipt file.
type Receipt struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	UpdateTransaction(transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	AttachReceipt(ctx context.Context, transactionID, filename, contentType string, size int64, data io.Reader) (*models.Transaction, error)
	OpenReceipt(ctx context.Context, transactionID string) (*Receipt, error)
}

// BudgetProgress contains spending vs plan for one category in a month.
type BudgetProgress struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Planned      float64 `json:"planned"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	Overridden   bool    `json:"overridden"`
}

// BudgetServicer defines the contract for budget templates, monthly
// overrides and their resolution.
type BudgetServicer interface {
	SetTemplate(categoryID string, planned float64) (*models.BudgetTemplate, error)
	DeleteTemplate(categoryID string) error
	GetTemplates() ([]models.BudgetTemplate, error)
	SetOverride(month calendar.Month, categoryID string, planned float64) (*models.Budget, error)
	DeleteOverride(month calendar.Month, categoryID string) error
	GetOverrides(month calendar.Month) ([]models.Budget, error)
	GetEffectiveBudgets(month calendar.Month) (map[string]float64, error)
	GetBudgetProgress(month calendar.Month) ([]BudgetProgress, error)
}

// RecurringInput carries the fields of a recurring definition.
type RecurringInput struct {
	Name        string
	Type        models.TransactionType
	CategoryID  string
	AccountID   string
	Amount      float64
	DayOfMonth  int
	Description string
	IsActive    bool
}

// RecurringRunSummary reports what a generation pass did.
type RecurringRunSummary struct {
	Month     string `json:"month"`
	Generated int    `json:"generated"`
	Resynced  int    `json:"resynced"`
	Skipped   int    `json:"skipped"`
}

// RecurringServicer defines the contract for recurring definitions and
// their monthly materialization.
type RecurringServicer interface {
	CreateRecurring(input RecurringInput) (*models.RecurringTransaction, error)
	GetRecurrings(activeOnly *bool) ([]models.RecurringTransaction, error)
	GetRecurringByID(recurringID string) (*models.RecurringTransaction, error)
	UpdateRecurring(recurringID string, input RecurringInput) (*models.RecurringTransaction, error)
	SetRecurringActive(recurringID string, active bool) (*models.RecurringTransaction, error)
	DeleteRecurring(recurringID string) error
	GenerateForMonth(month calendar.Month) (*RecurringRunSummary, error)
}

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	Imported          int    `json:"imported"`
	AccountID         string `json:"account_id"`
	AccountName       string `json:"account_name"`
	AccountCreated    bool   `json:"account_created"`
	CategoryFallbacks int    `json:"category_fallbacks"`
	DateFallbacks     int    `json:"date_fallbacks"`
	AmountFallbacks   int    `json:"amount_fallbacks"`
}

// ImportServicer defines the contract for statement imports.
type ImportServicer interface {
	ImportCSV(r io.Reader, accountName string) (*ImportResult, error)
}

// MonthSummary contains the dashboard totals for a month.
type MonthSummary struct {
	Month            string             `json:"month"`
	Income           float64            `json:"income"`
	Expense          float64            `json:"expense"`
	Balance          float64            `json:"balance"`
	Planned          float64            `json:"planned"`
	Spent            float64            `json:"spent"`
	BudgetBalance    float64            `json:"budget_balance"`
	ByCategory       map[string]float64 `json:"by_category"`
	TransactionCount int                `json:"transaction_count"`
}

// DashboardServicer defines the contract for the monthly dashboard.
type DashboardServicer interface {
	GetMonthSummary(month calendar.Month) (*MonthSummary, error)
}

// ExportedFile is a rendered report ready to be downloaded.
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportServicer defines the contract for report exports.
type ReportServicer interface {
	ExportTransactionsCSV(month *calendar.Month, categoryID *string) (*ExportedFile, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
